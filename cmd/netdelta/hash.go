// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/filehash"
)

func hashCommand() *cli.Command {
	return &cli.Command{
		Name:    "hash",
		Summary: "print the keyed file hash used by patch --expect-hash",
		Usage:   "netdelta hash [FILE]",
		Run: func(args []string) error {
			path := pathArg(args, 0)
			in, err := openRaw(path)
			if err != nil {
				return err
			}
			defer in.Close()

			digest, err := filehash.HashReader(in)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", filehash.Format(digest), path)
			return nil
		},
	}
}
