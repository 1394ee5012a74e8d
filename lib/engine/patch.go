// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/signature"
)

// CopyFunc reads basis content for COPY commands. It fills buf with
// bytes starting at basis offset pos and returns how many it wrote.
// Short reads are fine — the engine calls again for the rest. A
// return of zero bytes with a nil error means the basis cannot
// satisfy the request (offset beyond the end); the engine reports the
// delta as corrupt. Any error is propagated to the Iter caller
// unchanged.
type CopyFunc func(pos int64, buf []byte) (int, error)

// PatchBegin starts a patch job: it reads a delta stream and writes
// the reconstructed file, fetching COPY content through cb. The job
// owns nothing beyond the callback reference.
func PatchBegin(cb CopyFunc) *Job {
	j := newJob("patch", (*Job).patchHeader)
	j.copyCB = cb
	return j
}

// patchHeader checks the delta stream magic.
func (j *Job) patchHeader(b *Buffers) (Result, error) {
	p, st := j.readExact(b, 4)
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF, readShort:
		return InputEnded, fmt.Errorf("%w: reading delta magic", ErrInputEnded)
	}
	if m := signature.Magic(proto.Uint(p)); m != signature.DeltaMagic {
		return BadMagic, fmt.Errorf("%w: %#08x is not a delta stream", ErrBadMagic, uint32(m))
	}
	j.step = (*Job).patchCmd
	return Running, nil
}

// patchCmd reads one command byte and dispatches on its descriptor.
func (j *Job) patchCmd(b *Buffers) (Result, error) {
	p, st := j.readExact(b, 1)
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF, readShort:
		return InputEnded, fmt.Errorf("%w: delta ended before the END command", ErrInputEnded)
	}

	op := p[0]
	d := proto.Lookup(op)
	switch d.Kind {
	case proto.End:
		return Done, nil
	case proto.Literal:
		if d.Immediate {
			j.remaining = uint64(op)
			j.stats.LitCmds++
			j.stats.LitBytes += int64(op)
			j.stats.LitCmdBytes++
			j.step = (*Job).patchLitBody
			return Running, nil
		}
		j.desc = d
		j.step = (*Job).patchParams
		return Running, nil
	case proto.Copy:
		j.desc = d
		j.step = (*Job).patchParams
		return Running, nil
	default:
		return Corrupt, fmt.Errorf("%w: unknown command byte %#02x", ErrCorrupt, op)
	}
}

// patchParams reads the parameters of the pending command and starts
// its body.
func (j *Job) patchParams(b *Buffers) (Result, error) {
	d := j.desc
	p, st := j.readExact(b, int(d.Len1)+int(d.Len2))
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF, readShort:
		return InputEnded, fmt.Errorf("%w: delta ended inside a %v command", ErrInputEnded, d.Kind)
	}
	p1 := proto.Uint(p[:d.Len1])
	p2 := proto.Uint(p[d.Len1:])

	switch d.Kind {
	case proto.Literal:
		if p1 == 0 {
			return Corrupt, fmt.Errorf("%w: zero-length LITERAL", ErrCorrupt)
		}
		j.remaining = p1
		j.stats.LitCmds++
		j.stats.LitBytes += int64(p1)
		j.stats.LitCmdBytes += int64(1 + d.Len1)
		j.step = (*Job).patchLitBody
	case proto.Copy:
		if p2 == 0 {
			return Corrupt, fmt.Errorf("%w: zero-length COPY", ErrCorrupt)
		}
		if p1 > math.MaxInt64 {
			return Corrupt, fmt.Errorf("%w: COPY offset %d overflows", ErrCorrupt, p1)
		}
		j.basisPos = int64(p1)
		j.remaining = p2
		j.stats.CopyCmds++
		j.stats.CopyBytes += int64(p2)
		j.stats.CopyCmdBytes += int64(d.TotalSize)
		j.step = (*Job).patchCopyBody
	}
	return Running, nil
}

// patchLitBody streams literal payload from input to output. It never
// needs the whole payload at once.
func (j *Job) patchLitBody(b *Buffers) (Result, error) {
	for j.remaining > 0 {
		n := min(j.remaining, uint64(len(b.In)), uint64(len(b.Out)))
		if n == 0 {
			if len(b.In) == 0 && b.InEOF {
				return InputEnded, fmt.Errorf("%w: delta ends inside literal data", ErrInputEnded)
			}
			return Blocked, nil
		}
		copy(b.Out[:n], b.In[:n])
		b.In = b.In[n:]
		b.Out = b.Out[n:]
		j.stats.InBytes += int64(n)
		j.stats.OutBytes += int64(n)
		j.remaining -= n
	}
	j.step = (*Job).patchCmd
	return Running, nil
}

// patchCopyBody streams basis content to output through the callback,
// looping over short reads. The callback writes straight into the
// caller's output buffer.
func (j *Job) patchCopyBody(b *Buffers) (Result, error) {
	for j.remaining > 0 {
		if len(b.Out) == 0 {
			return Blocked, nil
		}
		n := min(j.remaining, uint64(len(b.Out)))
		m, err := j.copyCB(j.basisPos, b.Out[:n])
		if err != nil {
			return IOError, err
		}
		if m <= 0 {
			return Corrupt, fmt.Errorf("%w: basis read at offset %d returned no data for a %d-byte request",
				ErrCorrupt, j.basisPos, n)
		}
		if uint64(m) > n {
			return InternalError, fmt.Errorf("%w: basis callback wrote %d bytes into a %d-byte buffer",
				ErrInternal, m, n)
		}
		b.Out = b.Out[m:]
		j.stats.OutBytes += int64(m)
		j.basisPos += int64(m)
		j.remaining -= uint64(m)
	}
	j.step = (*Job).patchCmd
	return Running, nil
}
