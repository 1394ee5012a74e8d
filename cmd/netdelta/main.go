// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// netdelta computes and applies network deltas between two versions
// of a file. A machine holding only the old version publishes a
// compact signature; anyone holding the new version turns that
// signature into a delta; the old-version holder applies the delta to
// reconstruct the new version, never transferring the unchanged
// bytes.
//
// Usage:
//
//	netdelta signature [flags] [OLDFILE [SIGNATURE]]
//	netdelta delta [flags] SIGNATURE [NEWFILE [DELTA]]
//	netdelta patch [flags] OLDFILE [DELTA [NEWFILE]]
//	netdelta describe [flags] [SIGNATURE]
//	netdelta hash [FILE]
//	netdelta version
//
// A filename of "-" (or an omitted trailing filename) means stdin or
// stdout. On protocol failures the exit code is the engine result
// code (for example 104 for a bad magic number).
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/version"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("NETDELTA_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	root := &cli.Command{
		Name:    "netdelta",
		Summary: "compute and apply network deltas between file versions",
		Subcommands: []*cli.Command{
			signatureCommand(logger),
			deltaCommand(logger),
			patchCommand(logger),
			describeCommand(),
			hashCommand(),
			{
				Name:    "version",
				Summary: "print the netdelta version",
				Run: func(args []string) error {
					fmt.Printf("netdelta %s\n", version.Info())
					return nil
				},
			},
		},
	}

	if err := root.Execute(os.Args[1:]); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
