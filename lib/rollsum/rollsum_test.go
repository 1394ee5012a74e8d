// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rollsum

import (
	"math/rand"
	"testing"
)

// variants returns a fresh instance of every rolling-sum variant,
// keyed by name for subtests.
func variants() map[string]func() Rollsum {
	return map[string]func() Rollsum{
		"classic":   func() Rollsum { return NewClassic() },
		"rabinkarp": func() Rollsum { return NewRabinKarp() },
	}
}

// digestOf computes the checksum of p from scratch.
func digestOf(newSum func() Rollsum, p []byte) uint32 {
	s := newSum()
	s.Update(p)
	return s.Digest()
}

func TestRotateMatchesRecompute(t *testing.T) {
	// The defining property: after Rotate the digest equals a from-
	// scratch computation over the slid window.
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 4096)
	rng.Read(data)

	for name, newSum := range variants() {
		t.Run(name, func(t *testing.T) {
			for _, window := range []int{1, 2, 17, 64, 2048} {
				s := newSum()
				s.Update(data[:window])

				for pos := 0; pos+window < len(data); pos++ {
					s.Rotate(data[pos], data[pos+window])
					want := digestOf(newSum, data[pos+1:pos+1+window])
					if got := s.Digest(); got != want {
						t.Fatalf("window %d pos %d: rotated digest %08x, recomputed %08x",
							window, pos, got, want)
					}
				}
			}
		})
	}
}

func TestRolloutMatchesRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := make([]byte, 256)
	rng.Read(data)

	for name, newSum := range variants() {
		t.Run(name, func(t *testing.T) {
			s := newSum()
			s.Update(data)
			for i := 0; i < len(data); i++ {
				s.Rollout(data[i])
				want := digestOf(newSum, data[i+1:])
				if got := s.Digest(); got != want {
					t.Fatalf("after %d rollouts: digest %08x, recomputed %08x", i+1, got, want)
				}
				if got := s.Count(); got != len(data)-i-1 {
					t.Fatalf("after %d rollouts: count %d, want %d", i+1, got, len(data)-i-1)
				}
			}
		})
	}
}

func TestRollinEquivalentToUpdate(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	for name, newSum := range variants() {
		t.Run(name, func(t *testing.T) {
			byBytes := newSum()
			for _, c := range data {
				byBytes.Rollin(c)
			}
			if got, want := byBytes.Digest(), digestOf(newSum, data); got != want {
				t.Errorf("byte-at-a-time digest %08x, bulk digest %08x", got, want)
			}
			if byBytes.Count() != len(data) {
				t.Errorf("count = %d, want %d", byBytes.Count(), len(data))
			}
		})
	}
}

func TestReset(t *testing.T) {
	for name, newSum := range variants() {
		t.Run(name, func(t *testing.T) {
			s := newSum()
			empty := s.Digest()
			s.Update([]byte("some bytes"))
			s.Reset()
			if got := s.Digest(); got != empty {
				t.Errorf("digest after Reset = %08x, want %08x", got, empty)
			}
			if s.Count() != 0 {
				t.Errorf("count after Reset = %d, want 0", s.Count())
			}
		})
	}
}

func TestWindowLengthAffectsDigest(t *testing.T) {
	// A window of zeros must not hash equal to a longer window of
	// zeros: both variants fold the window length into the state.
	for name, newSum := range variants() {
		t.Run(name, func(t *testing.T) {
			short := digestOf(newSum, make([]byte, 16))
			long := digestOf(newSum, make([]byte, 32))
			if short == long {
				t.Errorf("16-zero and 32-zero windows both digest to %08x", short)
			}
		})
	}
}

func TestClassicKnownLayout(t *testing.T) {
	// The classic digest packs s2 high, s1 low. For a single byte c,
	// s1 = s2 = c + 31.
	s := NewClassic()
	s.Rollin(0x01)
	want := uint32(0x20)<<16 | 0x20
	if got := s.Digest(); got != want {
		t.Errorf("digest of single 0x01 = %08x, want %08x", got, want)
	}
}

func TestRabinKarpMultiplierInverse(t *testing.T) {
	// Typed variables, so the product wraps mod 2^32 instead of being
	// computed exactly as an untyped constant expression.
	mult, inv := uint32(rkMult), uint32(rkMultInv)
	if mult*inv != 1 {
		t.Fatalf("rkMultInv is not the inverse of rkMult mod 2^32")
	}
}

func BenchmarkRotate(b *testing.B) {
	data := make([]byte, 2048)
	for name, newSum := range variants() {
		b.Run(name, func(b *testing.B) {
			s := newSum()
			s.Update(data)
			b.SetBytes(1)
			for i := 0; i < b.N; i++ {
				s.Rotate(byte(i), byte(i>>8))
			}
		})
	}
}
