// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/engine"
)

func deltaCommand(logger *slog.Logger) *cli.Command {
	var flags sigFlags
	return &cli.Command{
		Name:    "delta",
		Summary: "compute a delta from a signature and a new file",
		Description: "Loads a signature, scans the new file for content the old\n" +
			"file already has, and writes a delta of COPY and LITERAL commands\n" +
			"that rebuilds the new file from the old one.",
		Usage: "netdelta delta [flags] SIGNATURE [NEWFILE [DELTA]]",
		Examples: []cli.Example{
			{Description: "delta from base.sig and current.img", Command: "netdelta delta base.sig current.img update.delta"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("delta", pflag.ContinueOnError)
			flags.register(fs, false)
			return fs
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("a signature file is required\n\nRun 'netdelta delta --help' for usage.")
			}
			if err := flags.resolve(); err != nil {
				return err
			}

			sigIn, err := openInput(args[0])
			if err != nil {
				return err
			}
			table, err := engine.LoadSigFile(sigIn, nil)
			sigIn.Close()
			if err != nil {
				return protocolExit(err)
			}
			table.BuildIndex()

			in, err := openRaw(pathArg(args, 1))
			if err != nil {
				return err
			}
			defer in.Close()

			rawOut, err := openOutput(pathArg(args, 2), flags.force)
			if err != nil {
				return err
			}
			out, err := compressOutput(rawOut, flags.compress)
			if err != nil {
				rawOut.Close()
				return err
			}

			job, err := engine.DeltaBegin(table)
			if err != nil {
				out.Close()
				return protocolExit(err)
			}
			job.SetLogger(logger)

			runErr := job.Drive(in, out)
			if closeErr := out.Close(); runErr == nil {
				runErr = closeErr
			}
			if runErr != nil {
				return protocolExit(runErr)
			}

			stats := job.Statistics()
			return reportStats(&stats, flags.showStats, flags.statsOut)
		},
	}
}
