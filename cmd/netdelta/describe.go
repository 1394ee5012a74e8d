// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/codec"
	"github.com/bureau-foundation/netdelta/lib/engine"
)

// sigSummary is the machine-readable signature description.
type sigSummary struct {
	Format    string `cbor:"format"     json:"format"`
	BlockLen  uint32 `cbor:"block_len"  json:"block_len"`
	StrongLen uint32 `cbor:"strong_len" json:"strong_len"`
	Blocks    int    `cbor:"blocks"     json:"blocks"`

	// CoversAtMost is the largest basis size this signature can
	// describe: a full final block. The true size may be up to
	// block_len-1 bytes smaller.
	CoversAtMost int64 `cbor:"covers_at_most" json:"covers_at_most"`
}

func describeCommand() *cli.Command {
	var asCBOR bool
	return &cli.Command{
		Name:    "describe",
		Summary: "summarize a signature file",
		Usage:   "netdelta describe [flags] [SIGNATURE]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("describe", pflag.ContinueOnError)
			fs.BoolVar(&asCBOR, "cbor", false, "write the summary as CBOR to stdout")
			return fs
		},
		Run: func(args []string) error {
			in, err := openInput(pathArg(args, 0))
			if err != nil {
				return err
			}
			defer in.Close()

			table, err := engine.LoadSigFile(in, nil)
			if err != nil {
				return protocolExit(err)
			}

			summary := sigSummary{
				Format:       table.Magic().String(),
				BlockLen:     table.BlockLen(),
				StrongLen:    table.StrongLen(),
				Blocks:       table.Len(),
				CoversAtMost: int64(table.Len()) * int64(table.BlockLen()),
			}

			if asCBOR {
				if term.IsTerminal(int(os.Stdout.Fd())) {
					return fmt.Errorf("refusing to write binary output to a terminal; redirect it or name a file")
				}
				data, err := codec.Marshal(summary)
				if err != nil {
					return fmt.Errorf("encoding summary: %w", err)
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			fmt.Printf("format:      %s\n", summary.Format)
			fmt.Printf("block size:  %d bytes\n", summary.BlockLen)
			fmt.Printf("strong sum:  %d bytes\n", summary.StrongLen)
			fmt.Printf("blocks:      %d\n", summary.Blocks)
			fmt.Printf("covers:      at most %d bytes\n", summary.CoversAtMost)
			return nil
		},
	}
}
