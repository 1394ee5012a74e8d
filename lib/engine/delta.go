// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/signature"
)

// litFlushLen bounds the pending-literal accumulator. Reaching it
// forces a LITERAL command, which also bounds how much output the
// tube ever holds back.
const litFlushLen = 4096

// DeltaBegin starts a delta-generation job: it reads the new stream
// and writes a delta relative to the signature. The table must be
// indexed ([signature.Table.BuildIndex]) and must not be mutated while
// the job lives; concurrent delta jobs may share one table.
func DeltaBegin(sig *signature.Table) (*Job, error) {
	if sig == nil {
		return nil, fmt.Errorf("%w: nil signature", ErrParam)
	}
	if !sig.Indexed() {
		return nil, fmt.Errorf("%w: signature hash table not built", ErrParam)
	}
	j := newJob("delta", (*Job).deltaHeader)
	j.sig = sig
	j.rs = sig.Magic().NewRollsum()
	j.stats.BlockLen = sig.BlockLen()
	j.stats.SigBlocks = int64(sig.Len())
	return j, nil
}

// deltaHeader emits the delta stream magic.
func (j *Job) deltaHeader(b *Buffers) (Result, error) {
	j.emit(proto.AppendUint(make([]byte, 0, 4), uint64(signature.DeltaMagic), 4))
	j.step = (*Job).deltaScan
	return Running, nil
}

// deltaScan is the match loop. It keeps a window of up to one block
// of unscanned new-file bytes. A full window whose weak sum hits the
// index and whose strong sum confirms becomes a COPY; on a miss the
// window slides one byte, the departed byte joining the pending
// literal. Matching is greedy left to right — bytes covered by a COPY
// are never revisited — and a COPY continuing exactly where the
// previous one ended is fused with it. At end of input the window
// shrinks byte by byte, still probing for matches of the short tail
// against the (possibly short) final block.
func (j *Job) deltaScan(b *Buffers) (Result, error) {
	blockLen := int(j.sig.BlockLen())

	// Compact the scanned-off prefix, then ingest what fits.
	if j.dpos > 0 {
		j.dbuf = append(j.dbuf[:0], j.dbuf[j.dpos:]...)
		j.dpos = 0
	}
	maxBuf := max(2*blockLen, 1<<16)
	if take := min(len(b.In), maxBuf-len(j.dbuf)); take > 0 {
		j.dbuf = append(j.dbuf, b.In[:take]...)
		b.In = b.In[take:]
		j.stats.InBytes += int64(take)
	}

	// The stream has truly ended only when the caller's buffer has
	// been ingested too; the window buffer's cap can leave input
	// behind for the next call.
	atEnd := b.InEOF && len(b.In) == 0

	for {
		// Yield once a decent batch of output is queued; the
		// runtime drains the tube and calls back in.
		if j.tube.size() >= litFlushLen {
			return Running, nil
		}

		// Prime the window up to a full block.
		for j.winLen < blockLen && j.dpos+j.winLen < len(j.dbuf) {
			j.rs.Rollin(j.dbuf[j.dpos+j.winLen])
			j.winLen++
		}

		if j.winLen == blockLen {
			window := j.dbuf[j.dpos : j.dpos+j.winLen]
			off, falseMatches, ok := j.sig.FindMatch(j.rs.Digest(), window)
			j.stats.FalseMatches += int64(falseMatches)
			if ok {
				j.matchFound(uint64(off))
				continue
			}
			if j.dpos+j.winLen < len(j.dbuf) {
				// Lookahead available: slide one byte.
				out, in := j.dbuf[j.dpos], j.dbuf[j.dpos+j.winLen]
				j.flushCopy()
				j.lit = append(j.lit, out)
				j.rs.Rotate(out, in)
				j.dpos++
				if len(j.lit) >= litFlushLen {
					j.flushLit()
				}
				continue
			}
			if !atEnd {
				break // need more input to slide
			}
			j.shrinkWindow()
			continue
		}

		// Window shorter than a block.
		if !atEnd {
			break // need more input to fill it
		}
		if j.winLen == 0 {
			// Everything scanned: flush and terminate.
			j.flushCopy()
			j.flushLit()
			j.emit(proto.AppendEnd(nil))
			return Done, nil
		}
		// Short tail: it may still equal the basis's short final
		// block (or, rarely, a full block of identical content).
		window := j.dbuf[j.dpos : j.dpos+j.winLen]
		off, falseMatches, ok := j.sig.FindMatch(j.rs.Digest(), window)
		j.stats.FalseMatches += int64(falseMatches)
		if ok {
			j.matchFound(uint64(off))
			continue
		}
		j.shrinkWindow()
	}

	return Blocked, nil
}

// matchFound turns the current window into a COPY and restarts the
// window after it.
func (j *Job) matchFound(off uint64) {
	j.flushLit()
	j.queueCopy(off, uint64(j.winLen))
	j.dpos += j.winLen
	j.winLen = 0
	j.rs.Reset()
}

// shrinkWindow drops the window's front byte into the pending literal.
// Used at end of input, when no byte is left to rotate in.
func (j *Job) shrinkWindow() {
	out := j.dbuf[j.dpos]
	j.flushCopy()
	j.lit = append(j.lit, out)
	j.rs.Rollout(out)
	j.dpos++
	j.winLen--
	if len(j.lit) >= litFlushLen {
		j.flushLit()
	}
}

// queueCopy records a COPY, fusing it with the pending one when it
// continues exactly where that one ended.
func (j *Job) queueCopy(off, length uint64) {
	if j.copyActive && j.copyOff+j.copyLen == off {
		j.copyLen += length
		return
	}
	j.flushCopy()
	j.copyActive = true
	j.copyOff = off
	j.copyLen = length
}

// flushCopy emits the pending COPY command, if any.
func (j *Job) flushCopy() {
	if !j.copyActive {
		return
	}
	cmd := proto.AppendCopy(make([]byte, 0, 17), j.copyOff, j.copyLen)
	j.emit(cmd)
	j.stats.CopyCmds++
	j.stats.CopyBytes += int64(j.copyLen)
	j.stats.CopyCmdBytes += int64(len(cmd))
	j.copyActive = false
}

// flushLit emits the pending LITERAL command, if any. At most one of
// the literal accumulator and the pending COPY is ever populated, so
// flush order between them cannot reorder the stream.
func (j *Job) flushLit() {
	if len(j.lit) == 0 {
		return
	}
	hdr := proto.AppendLiteral(make([]byte, 0, 9), uint64(len(j.lit)))
	j.emit(hdr)
	j.emit(j.lit)
	j.stats.LitCmds++
	j.stats.LitBytes += int64(len(j.lit))
	j.stats.LitCmdBytes += int64(len(hdr))
	j.lit = j.lit[:0]
}
