// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/signature"
)

// deltaStream hand-builds a delta from encoded commands.
func deltaStream(parts ...[]byte) []byte {
	stream := proto.AppendUint(nil, uint64(signature.DeltaMagic), 4)
	for _, p := range parts {
		stream = append(stream, p...)
	}
	return stream
}

func TestPatchBadMagic(t *testing.T) {
	stream := proto.AppendUint(nil, uint64(signature.RKBLAKE2SigMagic), 4)
	stream = proto.AppendEnd(stream)
	err := PatchFile(bytes.NewReader(nil), bytes.NewReader(stream), &bytes.Buffer{}, nil)
	if ResultOf(err) != BadMagic {
		t.Errorf("error = %v, want bad magic", err)
	}
}

func TestPatchReservedOpcode(t *testing.T) {
	stream := deltaStream([]byte{0xF7})
	err := PatchFile(bytes.NewReader(nil), bytes.NewReader(stream), &bytes.Buffer{}, nil)
	if ResultOf(err) != Corrupt {
		t.Errorf("error = %v, want corrupt", err)
	}
}

func TestPatchZeroLengthCommands(t *testing.T) {
	// Hand-encoded zero lengths have no legal meaning.
	zeroLit := deltaStream([]byte{0x41, 0x00})
	if err := PatchFile(bytes.NewReader(nil), bytes.NewReader(zeroLit), &bytes.Buffer{}, nil); ResultOf(err) != Corrupt {
		t.Errorf("zero literal error = %v, want corrupt", err)
	}
	zeroCopy := deltaStream([]byte{0x45, 0x00, 0x00})
	if err := PatchFile(bytes.NewReader(nil), bytes.NewReader(zeroCopy), &bytes.Buffer{}, nil); ResultOf(err) != Corrupt {
		t.Errorf("zero copy error = %v, want corrupt", err)
	}
}

func TestPatchTruncated(t *testing.T) {
	basis := []byte("abcdefgh")
	full := deltaStream(proto.AppendCopy(nil, 0, 8), proto.AppendEnd(nil))

	for cut := 1; cut < len(full); cut++ {
		err := PatchFile(bytes.NewReader(basis), bytes.NewReader(full[:cut]), &bytes.Buffer{}, nil)
		if ResultOf(err) != InputEnded {
			t.Errorf("cut at %d: error = %v, want input ended", cut, err)
		}
	}
}

func TestPatchTruncatedLiteralPayload(t *testing.T) {
	stream := deltaStream([]byte{0x08}, []byte("hell")) // 8 promised, 4 present
	err := PatchFile(bytes.NewReader(nil), bytes.NewReader(stream), &bytes.Buffer{}, nil)
	if ResultOf(err) != InputEnded {
		t.Errorf("error = %v, want input ended", err)
	}
}

func TestPatchImmediateAndExplicitLiterals(t *testing.T) {
	long := bytes.Repeat([]byte{0x5A}, 100) // needs the explicit form
	stream := deltaStream(
		[]byte{0x05}, []byte("hello"),
		proto.AppendLiteral(nil, uint64(len(long))), long,
		proto.AppendEnd(nil),
	)
	var out bytes.Buffer
	if err := PatchFile(bytes.NewReader(nil), bytes.NewReader(stream), &out, nil); err != nil {
		t.Fatalf("PatchFile: %v", err)
	}
	want := append([]byte("hello"), long...)
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("output = %q", out.Bytes())
	}
}

func TestPatchCopyRanges(t *testing.T) {
	basis := []byte("0123456789abcdef")
	stream := deltaStream(
		proto.AppendCopy(nil, 10, 6),
		proto.AppendCopy(nil, 0, 4),
		proto.AppendEnd(nil),
	)
	var out bytes.Buffer
	if err := PatchFile(bytes.NewReader(basis), bytes.NewReader(stream), &out, nil); err != nil {
		t.Fatalf("PatchFile: %v", err)
	}
	if got := out.String(); got != "abcdef0123" {
		t.Errorf("output = %q, want %q", got, "abcdef0123")
	}
}

func TestPatchCopyBeyondBasis(t *testing.T) {
	basis := []byte("short")
	stream := deltaStream(proto.AppendCopy(nil, 100, 4), proto.AppendEnd(nil))
	err := PatchFile(bytes.NewReader(basis), bytes.NewReader(stream), &bytes.Buffer{}, nil)
	if ResultOf(err) != Corrupt {
		t.Errorf("error = %v, want corrupt (basis yielded no data)", err)
	}
}

func TestPatchCallbackErrorPropagates(t *testing.T) {
	errBasis := errors.New("basis store offline")
	j := PatchBegin(func(pos int64, buf []byte) (int, error) {
		return 0, errBasis
	})
	stream := deltaStream(proto.AppendCopy(nil, 0, 4), proto.AppendEnd(nil))
	err := j.Drive(bytes.NewReader(stream), &bytes.Buffer{})
	if !errors.Is(err, errBasis) {
		t.Errorf("error = %v, want the callback error", err)
	}
	if ResultOf(err) != IOError {
		t.Errorf("ResultOf = %v, want IO error", ResultOf(err))
	}
}

func TestPatchCallbackShortReads(t *testing.T) {
	// A callback that hands out one byte at a time must still
	// satisfy the whole COPY.
	basis := []byte("abcdefgh")
	j := PatchBegin(func(pos int64, buf []byte) (int, error) {
		if pos >= int64(len(basis)) {
			return 0, nil
		}
		buf[0] = basis[pos]
		return 1, nil
	})
	stream := deltaStream(proto.AppendCopy(nil, 2, 5), proto.AppendEnd(nil))
	var out bytes.Buffer
	if err := j.Drive(bytes.NewReader(stream), &out); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if got := out.String(); got != "cdefg" {
		t.Errorf("output = %q, want %q", got, "cdefg")
	}
}

func TestPatchIgnoresBytesAfterEnd(t *testing.T) {
	// END terminates the stream; trailing bytes are simply not
	// consumed.
	stream := deltaStream([]byte{0x02}, []byte("ok"), proto.AppendEnd(nil))
	stream = append(stream, 0xDE, 0xAD)

	j := PatchBegin(FileBasis(bytes.NewReader(nil)))
	out := make([]byte, 16)
	b := Buffers{In: stream, InEOF: true, Out: out}
	res, err := j.Iter(&b)
	if err != nil || res != Done {
		t.Fatalf("Iter = %v, %v", res, err)
	}
	if got := string(out[:len(out)-len(b.Out)]); got != "ok" {
		t.Errorf("output = %q", got)
	}
	if len(b.In) != 2 {
		t.Errorf("%d unconsumed bytes, want 2", len(b.In))
	}
}

func TestPatchStats(t *testing.T) {
	basis := []byte("0123456789")
	stream := deltaStream(
		[]byte{0x03}, []byte("new"),
		proto.AppendCopy(nil, 0, 10),
		proto.AppendEnd(nil),
	)
	var stats Stats
	var out bytes.Buffer
	if err := PatchFile(bytes.NewReader(basis), bytes.NewReader(stream), &out, &stats); err != nil {
		t.Fatalf("PatchFile: %v", err)
	}
	if stats.LitCmds != 1 || stats.LitBytes != 3 {
		t.Errorf("literal stats = %d/%d, want 1/3", stats.LitCmds, stats.LitBytes)
	}
	if stats.CopyCmds != 1 || stats.CopyBytes != 10 {
		t.Errorf("copy stats = %d/%d, want 1/10", stats.CopyCmds, stats.CopyBytes)
	}
	if stats.OutBytes != 13 {
		t.Errorf("OutBytes = %d, want 13", stats.OutBytes)
	}
}
