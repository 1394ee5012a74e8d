// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stronghash

import (
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/md4"
)

// Algorithm identifies a strong-hash algorithm.
type Algorithm int

const (
	// MD4 is the legacy 16-byte digest. Compatibility only.
	MD4 Algorithm = iota + 1
	// BLAKE2b is the 32-byte keyed digest. The recommended choice.
	BLAKE2b
)

// MaxSumLength is the widest digest any algorithm produces. Strong
// sums in signatures are truncations of a digest of at most this size.
const MaxSumLength = 32

// String returns the lower-case algorithm name.
func (a Algorithm) String() string {
	switch a {
	case MD4:
		return "md4"
	case BLAKE2b:
		return "blake2b"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// SumLength returns the full digest width in bytes.
func (a Algorithm) SumLength() int {
	switch a {
	case MD4:
		return 16
	case BLAKE2b:
		return 32
	default:
		return 0
	}
}

// New returns a fresh hasher for the algorithm. For BLAKE2b the 4-byte
// domain key (the signature format magic, big-endian) is mixed in as
// the hash key; MD4 has no keyed mode and ignores it.
func New(algo Algorithm, key [4]byte) hash.Hash {
	switch algo {
	case MD4:
		return md4.New()
	case BLAKE2b:
		h, err := blake2b.New256(key[:])
		if err != nil {
			// New256 fails only for keys longer than 64 bytes,
			// which the fixed-size key type rules out.
			panic("stronghash: BLAKE2b initialization failed: " + err.Error())
		}
		return h
	default:
		panic(fmt.Sprintf("stronghash: unknown algorithm %d", int(algo)))
	}
}

// Sum computes the full-width digest of data in one shot.
func Sum(algo Algorithm, key [4]byte, data []byte) []byte {
	h := New(algo, key)
	h.Write(data)
	return h.Sum(nil)
}
