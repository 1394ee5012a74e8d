// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/engine"
)

func signatureCommand(logger *slog.Logger) *cli.Command {
	var flags sigFlags
	return &cli.Command{
		Name:    "signature",
		Summary: "generate the signature of a basis file",
		Description: "Reads the old file and writes its block signature: one\n" +
			"(rolling checksum, strong hash) pair per block. The signature is\n" +
			"what the holder of a newer version needs to compute a delta.",
		Usage: "netdelta signature [flags] [OLDFILE [SIGNATURE]]",
		Examples: []cli.Example{
			{Description: "signature of base.img into base.sig", Command: "netdelta signature base.img base.sig"},
			{Description: "small blocks, zstd-compressed output", Command: "netdelta signature -b 512 -z zstd base.img base.sig"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("signature", pflag.ContinueOnError)
			flags.register(fs, true)
			return fs
		},
		Run: func(args []string) error {
			if err := flags.resolve(); err != nil {
				return err
			}
			magic, err := flags.magic()
			if err != nil {
				return err
			}

			in, err := openRaw(pathArg(args, 0))
			if err != nil {
				return err
			}
			defer in.Close()

			rawOut, err := openOutput(pathArg(args, 1), flags.force)
			if err != nil {
				return err
			}
			out, err := compressOutput(rawOut, flags.compress)
			if err != nil {
				rawOut.Close()
				return err
			}

			job, err := engine.SigBegin(magic, flags.blockLen, flags.strongLen)
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
