// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rollsum

// RabinKarp parameters. The multiplier is an odd constant with good
// bit dispersion; its multiplicative inverse mod 2^32 lets Rollout
// shrink the maintained multiplier in O(1). The seed keeps the hash of
// an N-byte window dependent on N, so windows that are prefixes of one
// another hash differently.
const (
	rkSeed    = 1
	rkMult    = 0x08104225
	rkMultInv = 0x98f009ad // rkMult * rkMultInv == 1 (mod 2^32)

	// rkAdjust folds the seed term into rotation: sliding the window
	// must both remove the departing byte and knock the seed's power
	// of the multiplier back down by one.
	rkAdjust = rkSeed * (rkMult - 1)
)

// RabinKarp is a polynomial rolling hash. For a window b0..b(n-1) the
// hash is seed*M^n + b0*M^(n-1) + ... + b(n-1), all mod 2^32. The
// struct maintains mult = M^n incrementally so that Rotate and Rollout
// stay O(1).
type RabinKarp struct {
	count int
	hash  uint32
	mult  uint32
}

// NewRabinKarp returns a RabinKarp sum over an empty window.
func NewRabinKarp() *RabinKarp {
	return &RabinKarp{hash: rkSeed, mult: 1}
}

// Rollin appends in to the window.
func (r *RabinKarp) Rollin(in byte) {
	r.hash = r.hash*rkMult + uint32(in)
	r.mult *= rkMult
	r.count++
}

// Rotate slides the window by one byte.
func (r *RabinKarp) Rotate(out, in byte) {
	r.hash = r.hash*rkMult + uint32(in) - r.mult*(uint32(out)+rkAdjust)
}

// Rollout removes the leading byte, shrinking the window.
func (r *RabinKarp) Rollout(out byte) {
	r.mult *= rkMultInv
	r.hash -= r.mult * (uint32(out) + rkAdjust)
	r.count--
}

// Update rolls in every byte of p.
func (r *RabinKarp) Update(p []byte) {
	for _, c := range p {
		r.hash = r.hash*rkMult + uint32(c)
		r.mult *= rkMult
	}
	r.count += len(p)
}

// Digest returns the 32-bit hash of the current window.
func (r *RabinKarp) Digest() uint32 { return r.hash }

// Reset empties the window.
func (r *RabinKarp) Reset() { *r = RabinKarp{hash: rkSeed, mult: 1} }

// Count returns the window length.
func (r *RabinKarp) Count() int { return r.count }
