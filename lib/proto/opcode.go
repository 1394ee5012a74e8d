// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proto

import "fmt"

// Kind classifies a command byte.
type Kind uint8

const (
	// Reserved marks command bytes with no assigned meaning.
	// Decoders reject them as corrupt.
	Reserved Kind = iota
	// End terminates a delta stream. A single zero byte.
	End
	// Literal carries length, then that many payload bytes.
	Literal
	// Signature is reserved for embedded-signature commands; no
	// command byte currently maps to it.
	Signature
	// Copy carries a basis offset and length.
	Copy
)

// String returns the kind name for logs and errors.
func (k Kind) String() string {
	switch k {
	case Reserved:
		return "RESERVED"
	case End:
		return "END"
	case Literal:
		return "LITERAL"
	case Signature:
		return "SIGNATURE"
	case Copy:
		return "COPY"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Desc describes one command byte: its kind, the stream widths of its
// parameters, and whether the first parameter is immediate (its value
// is the command byte itself, occupying no stream bytes).
type Desc struct {
	Kind      Kind
	Len1      uint8 // first parameter width: 0, 1, 2, 4, or 8
	Len2      uint8 // second parameter width: 0 for non-COPY
	Immediate bool
	TotalSize uint8 // 1 + Len1 + Len2, for bounds checks
}

// Command byte layout. The table below is the single source of truth
// for both encode and decode.
const (
	opEnd = 0x00

	// Immediate literals: lengths 1..64 encoded in the command byte.
	opLiteralImmediateMin = 0x01
	opLiteralImmediateMax = 0x40

	// Explicit-length literals, one per parameter width.
	opLiteralN1 = 0x41
	opLiteralN2 = 0x42
	opLiteralN4 = 0x43
	opLiteralN8 = 0x44

	// Copies: sixteen combinations of (offset width, length width),
	// offset width major.
	opCopyMin = 0x45
	opCopyMax = 0x54
)

// widths maps a width index 0..3 to the parameter size in bytes.
var widths = [4]uint8{1, 2, 4, 8}

// prototab maps every command byte to its descriptor. Bytes not
// assigned below stay zero-valued, i.e. Reserved.
var prototab [256]Desc

func init() {
	prototab[opEnd] = Desc{Kind: End, TotalSize: 1}

	for op := opLiteralImmediateMin; op <= opLiteralImmediateMax; op++ {
		prototab[op] = Desc{Kind: Literal, Immediate: true, TotalSize: 1}
	}
	for i, w := range widths {
		prototab[opLiteralN1+i] = Desc{Kind: Literal, Len1: w, TotalSize: 1 + w}
	}
	for i1, w1 := range widths {
		for i2, w2 := range widths {
			prototab[opCopyMin+i1*4+i2] = Desc{Kind: Copy, Len1: w1, Len2: w2, TotalSize: 1 + w1 + w2}
		}
	}
}

// Lookup returns the descriptor for a command byte.
func Lookup(op byte) Desc { return prototab[op] }
