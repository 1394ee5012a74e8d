// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps signature and delta streams in optional
// stream compression for storage and transfer. The engine itself
// never compresses — deltas are already dense for changed content and
// COPY-heavy for unchanged content — but signature files of large
// bases and literal-heavy deltas both shrink well, so the tool layer
// offers it.
//
// Readers auto-detect the codec from the stream's leading bytes, so a
// consumer never needs to be told how a file was written. The codec
// magics (gzip, zstd, lz4 frame) are disjoint from the delta and
// signature magics, which all start with "rs".
package compress

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a stream compression algorithm.
type Codec uint8

const (
	// None passes bytes through untouched.
	None Codec = iota
	// Gzip is the widely portable default.
	Gzip
	// Zstd gives the best ratio/speed tradeoff for text-like
	// content; the recommended choice when both sides run this
	// tool.
	Zstd
	// LZ4 is the fastest, for cases where CPU is scarcer than
	// bandwidth.
	LZ4
)

// String returns the codec's flag-value name.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Parse parses a codec name as accepted on the command line.
func Parse(name string) (Codec, error) {
	switch name {
	case "none", "":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression codec: %q", name)
	}
}

// NewWriter wraps w in the codec's compressor. The returned writer
// must be closed to flush; closing it does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression codec: %d", uint8(c))
	}
}

// Stream magics for detection.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// NewReader sniffs r's leading bytes and returns a reader of the
// decompressed stream along with the detected codec. Unrecognized
// leading bytes mean an uncompressed stream; the bytes are not
// consumed. Close releases decompressor state without closing r.
func NewReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && len(head) == 0 {
		// Empty or unreadable stream: hand it through and let the
		// consumer produce its own error.
		return io.NopCloser(br), None, nil
	}

	switch {
	case hasPrefix(head, gzipMagic):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, Gzip, fmt.Errorf("opening gzip stream: %w", err)
		}
		return gr, Gzip, nil
	case hasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, Zstd, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zr.IOReadCloser(), Zstd, nil
	case hasPrefix(head, lz4Magic):
		return io.NopCloser(lz4.NewReader(br)), LZ4, nil
	default:
		return io.NopCloser(br), None, nil
	}
}

func hasPrefix(p, magic []byte) bool {
	if len(p) < len(magic) {
		return false
	}
	for i, b := range magic {
		if p[i] != b {
			return false
		}
	}
	return true
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
