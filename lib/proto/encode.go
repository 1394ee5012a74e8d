// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proto

// WidthOf returns the narrowest parameter width (1, 2, 4, or 8 bytes)
// that holds v.
func WidthOf(v uint64) uint8 {
	switch {
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

// widthIndex maps a width in bytes to its index in the command byte
// layout.
func widthIndex(w uint8) int {
	switch w {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 3
	}
}

// AppendUint appends v to dst as a big-endian unsigned integer of the
// given width. v must fit; high bytes beyond the width are discarded
// by construction, so callers pass widths from WidthOf.
func AppendUint(dst []byte, v uint64, width uint8) []byte {
	for shift := int(width-1) * 8; shift >= 0; shift -= 8 {
		dst = append(dst, byte(v>>shift))
	}
	return dst
}

// Uint decodes all of p as a big-endian unsigned integer. len(p) must
// be at most 8.
func Uint(p []byte) uint64 {
	var v uint64
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v
}

// AppendLiteral appends the shortest LITERAL command header for a
// payload of the given length: the immediate form for 1..64, otherwise
// the explicit form with the narrowest length parameter. The payload
// itself is not appended; it follows the header on the wire. length
// must be nonzero — a zero-length literal has no encoding.
func AppendLiteral(dst []byte, length uint64) []byte {
	if length == 0 {
		panic("proto: zero-length literal")
	}
	if length <= opLiteralImmediateMax-opLiteralImmediateMin+1 {
		return append(dst, byte(length))
	}
	w := WidthOf(length)
	dst = append(dst, byte(opLiteralN1+widthIndex(w)))
	return AppendUint(dst, length, w)
}

// AppendCopy appends the shortest COPY command for the given basis
// offset and length: the command byte whose (offset, length) widths
// jointly minimize the encoding. length must be nonzero.
func AppendCopy(dst []byte, offset, length uint64) []byte {
	if length == 0 {
		panic("proto: zero-length copy")
	}
	w1 := WidthOf(offset)
	w2 := WidthOf(length)
	dst = append(dst, byte(opCopyMin+widthIndex(w1)*4+widthIndex(w2)))
	dst = AppendUint(dst, offset, w1)
	return AppendUint(dst, length, w2)
}

// AppendEnd appends the stream terminator.
func AppendEnd(dst []byte) []byte {
	return append(dst, opEnd)
}
