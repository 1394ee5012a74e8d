// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"fmt"

	"github.com/bureau-foundation/netdelta/lib/rollsum"
	"github.com/bureau-foundation/netdelta/lib/stronghash"
)

// Magic is the 4-byte big-endian number at the start of every stream.
// It identifies the file kind and, for signatures, the weak and strong
// hash algorithms. The recognized values are a closed set — there is
// no registration mechanism.
type Magic uint32

const (
	// DeltaMagic marks a delta stream ("rs\x026"). There is a single
	// delta format; future formats would get new magics.
	DeltaMagic Magic = 0x72730236

	// MD4SigMagic marks a signature with the classic rolling checksum
	// and MD4 strong sums ("rs\x016"). Compatibility only: MD4 is
	// unsafe on files containing attacker-influenced data.
	MD4SigMagic Magic = 0x72730136

	// BLAKE2SigMagic marks a signature with the classic rolling
	// checksum and BLAKE2b strong sums ("rs\x017").
	BLAKE2SigMagic Magic = 0x72730137

	// RKMD4SigMagic marks a signature with the RabinKarp rolling
	// checksum and MD4 strong sums ("rs\x01F"). Same MD4 caveat.
	RKMD4SigMagic Magic = 0x72730146

	// RKBLAKE2SigMagic marks a signature with the RabinKarp rolling
	// checksum and BLAKE2b strong sums ("rs\x01G"). The recommended
	// format.
	RKBLAKE2SigMagic Magic = 0x72730147
)

// IsSignature reports whether m is one of the signature magics.
func (m Magic) IsSignature() bool {
	switch m {
	case MD4SigMagic, BLAKE2SigMagic, RKMD4SigMagic, RKBLAKE2SigMagic:
		return true
	}
	return false
}

// Algorithm returns the strong-hash algorithm a signature magic
// selects, or zero for non-signature magics.
func (m Magic) Algorithm() stronghash.Algorithm {
	switch m {
	case MD4SigMagic, RKMD4SigMagic:
		return stronghash.MD4
	case BLAKE2SigMagic, RKBLAKE2SigMagic:
		return stronghash.BLAKE2b
	}
	return 0
}

// NewRollsum returns a fresh rolling checksum of the variant the magic
// selects, or nil for non-signature magics.
func (m Magic) NewRollsum() rollsum.Rollsum {
	switch m {
	case MD4SigMagic, BLAKE2SigMagic:
		return rollsum.NewClassic()
	case RKMD4SigMagic, RKBLAKE2SigMagic:
		return rollsum.NewRabinKarp()
	}
	return nil
}

// Key returns the magic's big-endian byte encoding. Signature strong
// hashes are keyed with this value so that the same block content
// digests differently under different formats.
func (m Magic) Key() [4]byte {
	return [4]byte{byte(m >> 24), byte(m >> 16), byte(m >> 8), byte(m)}
}

// MaxStrongLen returns the widest strong sum the magic's algorithm can
// produce, or zero for non-signature magics.
func (m Magic) MaxStrongLen() uint32 {
	if a := m.Algorithm(); a != 0 {
		return uint32(a.SumLength())
	}
	return 0
}

// String returns a short name for logs and CLI output.
func (m Magic) String() string {
	switch m {
	case DeltaMagic:
		return "delta"
	case MD4SigMagic:
		return "md4"
	case BLAKE2SigMagic:
		return "blake2"
	case RKMD4SigMagic:
		return "rk-md4"
	case RKBLAKE2SigMagic:
		return "rk-blake2"
	default:
		return fmt.Sprintf("unknown(%#08x)", uint32(m))
	}
}

// SigMagicFor composes a signature magic from algorithm choices:
// the RabinKarp rolling checksum or the classic one, and the strong
// hash algorithm.
func SigMagicFor(rabinKarp bool, algo stronghash.Algorithm) (Magic, error) {
	switch {
	case rabinKarp && algo == stronghash.MD4:
		return RKMD4SigMagic, nil
	case rabinKarp && algo == stronghash.BLAKE2b:
		return RKBLAKE2SigMagic, nil
	case !rabinKarp && algo == stronghash.MD4:
		return MD4SigMagic, nil
	case !rabinKarp && algo == stronghash.BLAKE2b:
		return BLAKE2SigMagic, nil
	}
	return 0, fmt.Errorf("no signature format for algorithm %v", algo)
}
