// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/signature"
)

// TestRoundTrip is the central law: signature, delta, patch must
// reconstruct the new file exactly, whatever the relationship between
// old and new.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := func(n int) []byte {
		p := make([]byte, n)
		rng.Read(p)
		return p
	}

	base := random(10000)
	interior := append(append(random(3000), base[2000:7000]...), random(3000)...)

	cases := []struct {
		name     string
		old, new []byte
	}{
		{"identical", base, base},
		{"disjoint", base, random(10000)},
		{"shared prefix", base, append(append([]byte(nil), base[:6000]...), random(4000)...)},
		{"shared suffix", base, append(random(4000), base[4000:]...)},
		{"interior run", base, interior},
		{"empty old", nil, random(5000)},
		{"empty new", base, nil},
		{"both empty", nil, nil},
		{"new shorter", base, base[:100]},
		{"old shorter", base[:100], base},
	}

	magics := []signature.Magic{
		signature.MD4SigMagic, signature.BLAKE2SigMagic,
		signature.RKMD4SigMagic, signature.RKBLAKE2SigMagic,
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, magic := range magics {
				for _, blockLen := range []uint32{64, 701, 2048} {
					got := roundTrip(t, c.old, c.new, magic, blockLen, 8)
					if !bytes.Equal(got, c.new) {
						t.Errorf("%v block %d: reconstruction differs (%d bytes, want %d)",
							magic, blockLen, len(got), len(c.new))
					}
				}
			}
		})
	}
}

func TestRoundTripBlockBoundaryRun(t *testing.T) {
	// A shared run deliberately crossing block boundaries at odd
	// offsets on both sides.
	rng := rand.New(rand.NewSource(7))
	old := make([]byte, 8192)
	rng.Read(old)
	shared := old[1000:5100] // spans several 512-byte blocks, unaligned
	newData := append(append(bytes.Repeat([]byte{0xEE}, 777), shared...), bytes.Repeat([]byte{0xDD}, 333)...)

	got := roundTrip(t, old, newData, signature.RKBLAKE2SigMagic, 512, 16)
	if !bytes.Equal(got, newData) {
		t.Fatal("reconstruction differs for a boundary-crossing shared run")
	}
}

func TestRoundTripSingleFlippedByte(t *testing.T) {
	// One flipped byte in a megabyte: the delta degrades by at most
	// the block containing the flip, and adjacent copies fuse.
	rng := rand.New(rand.NewSource(9))
	old := make([]byte, 1000000)
	rng.Read(old)
	newData := append([]byte(nil), old...)
	newData[500000] ^= 0xFF

	table := tableOf(t, sigOf(t, old, signature.RKBLAKE2SigMagic, 1024, 8))
	delta := deltaOf(t, table, newData)

	var lits, copies int
	var litBytes int64
	for _, c := range parseDelta(t, delta) {
		switch c.kind {
		case proto.Literal:
			lits++
			litBytes += int64(len(c.payload))
		case proto.Copy:
			copies++
		}
	}
	if copies > 2 {
		t.Errorf("delta has %d COPY commands, want at most 2", copies)
	}
	if lits != 1 || litBytes > 1024 {
		t.Errorf("delta has %d literals of %d bytes, want one of at most a block", lits, litBytes)
	}
	if got := patchOf(t, old, delta); !bytes.Equal(got, newData) {
		t.Fatal("reconstruction differs")
	}
}

// dribble advances a job one byte of input and one byte of output at
// a time, the worst legal buffer geometry.
func dribble(t *testing.T, j *Job, input []byte) []byte {
	t.Helper()
	var out []byte
	outBuf := make([]byte, 1)
	b := Buffers{}
	pos := 0
	for steps := 0; ; steps++ {
		if steps > 100*(len(input)+len(out))+10000 {
			t.Fatal("dribble: no termination")
		}
		if len(b.In) == 0 && pos < len(input) {
			b.In = input[pos : pos+1]
			pos++
		}
		b.InEOF = pos == len(input)
		b.Out = outBuf[:1]
		res, err := j.Iter(&b)
		if err != nil {
			t.Fatalf("Iter: %v", err)
		}
		if len(b.Out) == 0 {
			out = append(out, outBuf[0])
		}
		if res == Done {
			return out
		}
	}
}

// TestStreamingEquivalence: driving any job with one-byte buffers
// produces bit-identical output to driving it with large buffers.
func TestStreamingEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	old := make([]byte, 5000)
	rng.Read(old)
	newData := append(append([]byte(nil), old[:1500]...), old[2500:]...)
	newData = append(newData, 0x42, 0x43)

	const blockLen, strongLen = 256, 8
	magic := signature.RKBLAKE2SigMagic

	// Signature.
	sigWhole := sigOf(t, old, magic, blockLen, strongLen)
	j, err := SigBegin(magic, blockLen, strongLen)
	if err != nil {
		t.Fatalf("SigBegin: %v", err)
	}
	if got := dribble(t, j, old); !bytes.Equal(got, sigWhole) {
		t.Error("signature differs under one-byte buffers")
	}

	// Delta.
	table := tableOf(t, sigWhole)
	deltaWhole := deltaOf(t, table, newData)
	dj, err := DeltaBegin(table)
	if err != nil {
		t.Fatalf("DeltaBegin: %v", err)
	}
	if got := dribble(t, dj, newData); !bytes.Equal(got, deltaWhole) {
		t.Error("delta differs under one-byte buffers")
	}

	// Loadsig: the loaded table must behave identically.
	lj := LoadSigBegin()
	dribble(t, lj, sigWhole)
	dribbledTable, err := lj.Signature()
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	dribbledTable.BuildIndex()
	if got := deltaOf(t, dribbledTable, newData); !bytes.Equal(got, deltaWhole) {
		t.Error("table loaded under one-byte buffers produces a different delta")
	}

	// Patch.
	patchWhole := patchOf(t, old, deltaWhole)
	pj := PatchBegin(FileBasis(bytes.NewReader(old)))
	if got := dribble(t, pj, deltaWhole); !bytes.Equal(got, patchWhole) {
		t.Error("patch output differs under one-byte buffers")
	}
	if !bytes.Equal(patchWhole, newData) {
		t.Error("patch did not reconstruct the new file")
	}
}
