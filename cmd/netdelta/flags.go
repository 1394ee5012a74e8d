// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netdelta/lib/config"
	"github.com/bureau-foundation/netdelta/lib/signature"
	"github.com/bureau-foundation/netdelta/lib/stronghash"
)

// sigFlags are the signature-parameter and output flags shared by the
// commands that produce streams. Values left at their zero value by
// the user are filled from configuration.
type sigFlags struct {
	configPath string
	blockLen   uint32
	strongLen  uint32
	rollsum    string
	hash       string
	compress   string
	force      bool
	showStats  bool
	statsOut   string

	fs *pflag.FlagSet
}

// register adds the common flags to fs. withSigParams controls
// whether the block/sum/algorithm flags appear (only signature
// generation takes them; delta and patch inherit everything from the
// signature stream).
func (f *sigFlags) register(fs *pflag.FlagSet, withSigParams bool) {
	f.fs = fs
	fs.StringVar(&f.configPath, "config", "", "config file (YAML or JSONC)")
	if withSigParams {
		fs.Uint32VarP(&f.blockLen, "block-size", "b", 0, "signature block size in bytes (0 = recommended)")
		fs.Uint32VarP(&f.strongLen, "sum-size", "S", 0, "strong sum bytes kept per block (0 = recommended)")
		fs.StringVarP(&f.rollsum, "rollsum", "R", "", "rolling checksum: rabinkarp or classic")
		fs.StringVarP(&f.hash, "hash", "H", "", "strong hash: blake2 or md4")
	}
	fs.StringVarP(&f.compress, "compress", "z", "", "compress signature or delta output: none, gzip, zstd, or lz4 (patch output is never compressed)")
	fs.BoolVar(&f.force, "force", false, "overwrite existing output files")
	fs.BoolVar(&f.showStats, "stats", false, "print statistics to stderr")
	fs.StringVar(&f.statsOut, "stats-out", "", "write CBOR statistics to this file")
}

// resolve loads configuration and fills in every flag the user did
// not pass explicitly.
func (f *sigFlags) resolve() error {
	var cfg config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if !f.changed("block-size") {
		f.blockLen = cfg.BlockLen
	}
	if !f.changed("sum-size") {
		f.strongLen = cfg.StrongLen
	}
	if !f.changed("rollsum") {
		f.rollsum = cfg.Rollsum
	}
	if !f.changed("hash") {
		f.hash = cfg.Hash
	}
	if !f.changed("compress") {
		f.compress = cfg.Compress
	}
	if !f.changed("force") && cfg.Force {
		f.force = true
	}
	return nil
}

func (f *sigFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Lookup(name) != nil && f.fs.Changed(name)
}

// magic composes the signature format from the rollsum and hash flag
// values.
func (f *sigFlags) magic() (signature.Magic, error) {
	var rabinKarp bool
	switch f.rollsum {
	case "", "rabinkarp":
		rabinKarp = true
	case "classic":
	default:
		return 0, fmt.Errorf("unknown rollsum %q (want rabinkarp or classic)", f.rollsum)
	}

	var algo stronghash.Algorithm
	switch f.hash {
	case "", "blake2":
		algo = stronghash.BLAKE2b
	case "md4":
		algo = stronghash.MD4
	default:
		return 0, fmt.Errorf("unknown hash %q (want blake2 or md4)", f.hash)
	}

	return signature.SigMagicFor(rabinKarp, algo)
}

// openRaw opens path for reading without compression sniffing, stdin
// for "-". Used for user content (the basis and the new file), which
// must pass through byte-exact.
func openRaw(path string) (io.ReadCloser, error) {
	if path == stdinName {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
