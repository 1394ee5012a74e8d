// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/engine"
	"github.com/bureau-foundation/netdelta/lib/filehash"
)

func patchCommand(logger *slog.Logger) *cli.Command {
	var flags sigFlags
	var expectHash string
	return &cli.Command{
		Name:    "patch",
		Summary: "apply a delta to a basis file",
		Description: "Applies a delta against the old file, reconstructing the new\n" +
			"file. The basis must be a regular file (COPY commands read it at\n" +
			"arbitrary offsets), so it cannot come from stdin.",
		Usage: "netdelta patch [flags] OLDFILE [DELTA [NEWFILE]]",
		Examples: []cli.Example{
			{Description: "rebuild current.img from base.img and a delta", Command: "netdelta patch base.img update.delta current.img"},
			{Description: "verify the result against a known file hash", Command: "netdelta patch --expect-hash 9f2c... base.img update.delta current.img"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("patch", pflag.ContinueOnError)
			flags.register(fs, false)
			fs.StringVar(&expectHash, "expect-hash", "", "fail unless the output's file hash equals this hex digest")
			return fs
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("a basis file is required\n\nRun 'netdelta patch --help' for usage.")
			}
			if err := flags.resolve(); err != nil {
				return err
			}

			var want filehash.Hash
			verify := expectHash != ""
			if verify {
				parsed, err := filehash.Parse(expectHash)
				if err != nil {
					return err
				}
				want = parsed
			}

			basis, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer basis.Close()

			deltaIn, err := openInput(pathArg(args, 1))
			if err != nil {
				return err
			}
			defer deltaIn.Close()

			out, err := openOutput(pathArg(args, 2), flags.force)
			if err != nil {
				return err
			}

			hasher := filehash.New()
			var sink io.Writer = out
			if verify {
				sink = io.MultiWriter(out, hasher)
			}

			job := engine.PatchBegin(engine.FileBasis(basis))
			job.SetLogger(logger)

			runErr := job.Drive(deltaIn, sink)
			if closeErr := out.Close(); runErr == nil {
				runErr = closeErr
			}
			if runErr != nil {
				return protocolExit(runErr)
			}

			if verify {
				if got := hasher.Sum(); got != want {
					return fmt.Errorf("output hash %s does not match expected %s",
						filehash.Format(got), expectHash)
				}
			}

			stats := job.Statistics()
			return reportStats(&stats, flags.showStats, flags.statsOut)
		},
	}
}
