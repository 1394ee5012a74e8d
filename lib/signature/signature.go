// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"fmt"

	"github.com/bureau-foundation/netdelta/lib/stronghash"
)

// Stream format bounds. The block length cap matches what the loader
// accepts on the wire; larger values would let a hostile signature
// file demand unbounded per-record buffering.
const (
	MinBlockLen = 1
	MaxBlockLen = 1 << 16

	// DefaultBlockLen is used when the basis size is unknown. Sized
	// for typical files of a few megabytes.
	DefaultBlockLen = 2048

	// DefaultStrongLen is the strong-sum truncation used when the
	// basis size is unknown. Conservative: safe against random
	// collisions for any realistic file at the default block length.
	DefaultStrongLen = 12
)

// Entry is one block's signature: the 32-bit weak rolling checksum and
// the truncated strong digest. Entry i covers basis bytes
// [i*block_len, (i+1)*block_len); the final block may be short.
type Entry struct {
	Weak   uint32
	Strong []byte
}

// Table is an in-memory signature: format parameters, the ordered
// entry sequence, and (after BuildIndex) the weak-sum hash index.
type Table struct {
	magic     Magic
	blockLen  uint32
	strongLen uint32
	key       [4]byte

	entries []Entry

	// slots is the open-addressed index: a power-of-two array of
	// entry numbers, emptySlot where unoccupied. nil until
	// BuildIndex runs.
	slots []int32
	mask  uint32
}

const emptySlot = -1

// New creates an empty table for the given format parameters.
func New(magic Magic, blockLen, strongLen uint32) (*Table, error) {
	if !magic.IsSignature() {
		return nil, fmt.Errorf("magic %#08x is not a signature format", uint32(magic))
	}
	if blockLen < MinBlockLen || blockLen > MaxBlockLen {
		return nil, fmt.Errorf("block length %d outside [%d, %d]", blockLen, MinBlockLen, MaxBlockLen)
	}
	if strongLen < 1 || strongLen > magic.MaxStrongLen() {
		return nil, fmt.Errorf("strong sum length %d outside [1, %d] for %v",
			strongLen, magic.MaxStrongLen(), magic)
	}
	return &Table{
		magic:     magic,
		blockLen:  blockLen,
		strongLen: strongLen,
		key:       magic.Key(),
	}, nil
}

// Magic returns the signature format.
func (t *Table) Magic() Magic { return t.magic }

// BlockLen returns the bytes per block.
func (t *Table) BlockLen() uint32 { return t.blockLen }

// StrongLen returns the truncated strong-sum width in bytes.
func (t *Table) StrongLen() uint32 { return t.strongLen }

// Len returns the number of entries (blocks).
func (t *Table) Len() int { return len(t.entries) }

// Entry returns entry i. The returned strong sum aliases table memory
// and must not be modified.
func (t *Table) Entry(i int) Entry { return t.entries[i] }

// Append adds the next block's sums. strong must be exactly StrongLen
// bytes; it is copied. Appending after BuildIndex discards the index,
// so a later BuildIndex call re-covers every entry.
func (t *Table) Append(weak uint32, strong []byte) error {
	if uint32(len(strong)) != t.strongLen {
		return fmt.Errorf("strong sum is %d bytes, want %d", len(strong), t.strongLen)
	}
	t.entries = append(t.entries, Entry{Weak: weak, Strong: append([]byte(nil), strong...)})
	t.slots = nil
	return nil
}

// StrongOf computes the truncated strong sum of block content under
// this table's algorithm and domain key.
func (t *Table) StrongOf(block []byte) []byte {
	return stronghash.Sum(t.magic.Algorithm(), t.key, block)[:t.strongLen]
}
