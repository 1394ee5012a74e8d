// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/netdelta/cmd/netdelta/cli"
	"github.com/bureau-foundation/netdelta/lib/codec"
	"github.com/bureau-foundation/netdelta/lib/compress"
	"github.com/bureau-foundation/netdelta/lib/engine"
)

// stdinName is the filename meaning stdin or stdout.
const stdinName = "-"

// pathArg returns positional argument i, with "-" standing in for
// anything omitted.
func pathArg(args []string, i int) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return stdinName
}

// openInput opens path for reading, stdin for "-". The returned
// reader transparently decompresses gzip, zstd, and lz4 streams.
func openInput(path string) (io.ReadCloser, error) {
	var raw io.Reader
	var file *os.File
	if path == stdinName {
		raw = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		file = f
		raw = f
	}
	r, _, err := compress.NewReader(raw)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &inputFile{ReadCloser: r, file: file}, nil
}

// inputFile couples a decompressing reader with the file under it so
// Close releases both.
type inputFile struct {
	io.ReadCloser
	file *os.File
}

func (f *inputFile) Close() error {
	err := f.ReadCloser.Close()
	if f.file != nil {
		if cerr := f.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// openOutput opens path for writing, stdout for "-". Existing files
// are not overwritten unless force is set. Writing a binary stream to
// a terminal is refused — that is never what anyone wants.
func openOutput(path string, force bool) (io.WriteCloser, error) {
	if path == stdinName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, fmt.Errorf("refusing to write binary output to a terminal; redirect it or name a file")
		}
		return nopCloser{os.Stdout}, nil
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%s exists; use --force to overwrite", path)
		}
		return nil, err
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// compressOutput wraps w in the named codec. The returned closer
// flushes the compressor and then closes w.
func compressOutput(w io.WriteCloser, codecName string) (io.WriteCloser, error) {
	c, err := compress.Parse(codecName)
	if err != nil {
		return nil, err
	}
	cw, err := compress.NewWriter(w, c)
	if err != nil {
		return nil, err
	}
	return &stackedCloser{WriteCloser: cw, under: w}, nil
}

type stackedCloser struct {
	io.WriteCloser
	under io.WriteCloser
}

func (s *stackedCloser) Close() error {
	err := s.WriteCloser.Close()
	if cerr := s.under.Close(); err == nil {
		err = cerr
	}
	return err
}

// reportStats prints human-readable statistics to stderr when asked,
// and writes the CBOR form when an output path is named.
func reportStats(stats *engine.Stats, show bool, outPath string) error {
	if show {
		fmt.Fprintln(os.Stderr, stats.String())
	}
	if outPath == "" {
		return nil
	}
	data, err := codec.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding statistics: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing statistics: %w", err)
	}
	return nil
}

// protocolExit converts an engine error into its result exit code
// after printing it. Non-engine errors pass through for generic
// handling.
func protocolExit(err error) error {
	if err == nil {
		return nil
	}
	res := engine.ResultOf(err)
	fmt.Fprintf(os.Stderr, "netdelta: %v\n", err)
	return &cli.ExitError{Code: int(res)}
}
