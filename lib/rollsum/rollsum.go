// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rollsum

// Rollsum is the uniform interface over the weak-checksum variants.
// All operations are O(1) except Update, which is O(len(p)).
type Rollsum interface {
	// Rollin appends one byte to the window without evicting anything.
	Rollin(in byte)

	// Rotate slides the window one byte: out is the byte leaving the
	// front, in is the byte entering at the back. The window length
	// is unchanged.
	Rotate(out, in byte)

	// Rollout removes the byte at the front of the window, shrinking
	// it by one. Used at end of input when there is no byte left to
	// rotate in.
	Rollout(out byte)

	// Update rolls in every byte of p.
	Update(p []byte)

	// Digest returns the 32-bit checksum of the current window.
	Digest() uint32

	// Reset returns the sum to its initial empty-window state.
	Reset()

	// Count returns the current window length in bytes.
	Count() int
}

// classicOffset is added to every byte before mixing. It keeps short
// windows of zero bytes from all hashing to zero.
const classicOffset = 31

// Classic is the original two-half rolling checksum: s1 is the sum of
// the (offset) window bytes, s2 the sum of the running s1 values. The
// digest packs s2 into the high 16 bits and s1 into the low 16.
type Classic struct {
	count  int
	s1, s2 uint32
}

// NewClassic returns a Classic sum over an empty window.
func NewClassic() *Classic { return &Classic{} }

// Rollin appends in to the window.
func (r *Classic) Rollin(in byte) {
	r.s1 += uint32(in) + classicOffset
	r.s2 += r.s1
	r.count++
}

// Rotate slides the window by one byte. The per-byte offsets cancel in
// s1; s2 loses count copies of the departing (offset) byte.
func (r *Classic) Rotate(out, in byte) {
	r.s1 += uint32(in) - uint32(out)
	r.s2 += r.s1 - uint32(r.count)*(uint32(out)+classicOffset)
}

// Rollout removes the leading byte, shrinking the window.
func (r *Classic) Rollout(out byte) {
	r.s1 -= uint32(out) + classicOffset
	r.s2 -= uint32(r.count) * (uint32(out) + classicOffset)
	r.count--
}

// Update rolls in every byte of p.
func (r *Classic) Update(p []byte) {
	for _, c := range p {
		r.s1 += uint32(c) + classicOffset
		r.s2 += r.s1
	}
	r.count += len(p)
}

// Digest returns (s2 << 16) | (s1 & 0xffff).
func (r *Classic) Digest() uint32 {
	return r.s2<<16 | r.s1&0xffff
}

// Reset empties the window.
func (r *Classic) Reset() { *r = Classic{} }

// Count returns the window length.
func (r *Classic) Count() int { return r.count }
