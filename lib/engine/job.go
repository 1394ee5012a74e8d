// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/rollsum"
	"github.com/bureau-foundation/netdelta/lib/signature"
)

// statefun is one node of a job's state machine. Given the current
// buffers it consumes and produces what it can, stores the next node
// in j.step, and returns Running to be called again, Blocked to yield
// to the caller, Done on completion, or an error.
type statefun func(j *Job, b *Buffers) (Result, error)

// Job is a running instance of one operation. Create one with
// [SigBegin], [LoadSigBegin], [DeltaBegin], or [PatchBegin]; advance
// it with [Iter] (or [Drive]) until Done or an error. Jobs are not
// safe for concurrent use; distinct jobs are independent.
type Job struct {
	op     string
	step   statefun
	err    error
	done   bool
	stats  Stats
	logger *slog.Logger

	tube  tube
	scoop []byte

	// Signature generation.
	sigArgs signature.Args

	// Signature loading.
	loadMagic signature.Magic
	table     *signature.Table

	// Delta generation.
	sig        *signature.Table
	rs         rollsum.Rollsum
	dbuf       []byte
	dpos       int
	winLen     int
	lit        []byte
	copyActive bool
	copyOff    uint64
	copyLen    uint64

	// Patch application.
	copyCB    CopyFunc
	desc      proto.Desc
	remaining uint64
	basisPos  int64
}

func newJob(op string, step statefun) *Job {
	j := &Job{op: op, step: step}
	j.stats.Op = op
	j.stats.Start = time.Now()
	return j
}

// SetLogger attaches a logger; the job reports completion statistics
// at Debug level. Nil (the default) disables logging.
func (j *Job) SetLogger(l *slog.Logger) { j.logger = l }

// Statistics returns a snapshot of the job's counters.
func (j *Job) Statistics() Stats { return j.stats }

// Iter advances the state machine until it completes, fails, or can
// make no progress with the given buffers. It returns Done exactly
// when the operation has finished and all output has been handed to
// the caller; Blocked means call again with more input or output
// space. A terminal error is sticky: every later call returns it.
func (j *Job) Iter(b *Buffers) (Result, error) {
	if j.err != nil {
		return ResultOf(j.err), j.err
	}
	for {
		// Held-back output goes out first; state functions must
		// never run behind queued output.
		j.drainTube(b)
		if !j.tube.empty() {
			return Blocked, nil
		}
		if j.done {
			j.finish()
			return Done, nil
		}

		res, err := j.step(j, b)
		if err != nil {
			j.err = err
			j.finish()
			return ResultOf(err), err
		}
		switch res {
		case Running:
		case Done:
			j.done = true
		case Blocked:
			j.drainTube(b)
			return Blocked, nil
		default:
			j.err = fmt.Errorf("%w: state function returned %v", ErrInternal, res)
			return InternalError, j.err
		}
	}
}

// drainTube moves held-back output into the caller's buffer.
func (j *Job) drainTube(b *Buffers) {
	if j.tube.empty() {
		return
	}
	n := copy(b.Out, j.tube.pending())
	j.tube.advance(n)
	b.Out = b.Out[n:]
	j.stats.OutBytes += int64(n)
}

// emit queues a protocol record for output.
func (j *Job) emit(p []byte) { j.tube.write(p) }

func (j *Job) finish() {
	if j.stats.End.IsZero() {
		j.stats.End = time.Now()
		if j.logger != nil {
			j.logger.Debug("job finished", "op", j.op, "stats", j.stats.String())
		}
	}
}

// readStatus reports how an input request went.
type readStatus int

const (
	readOK      readStatus = iota
	readBlocked            // need more input; stream not ended
	readEOF                // clean end: no pending bytes and no more input
	readShort              // stream ended with a partial record pending
)

// readExact returns a contiguous view of exactly n input bytes,
// consuming them. When the caller's buffer already holds n bytes and
// nothing is pending, the view borrows from it directly; otherwise
// input accumulates in the scoop across calls until n bytes are
// present. The returned slice is valid until the next read.
func (j *Job) readExact(b *Buffers, n int) ([]byte, readStatus) {
	if len(j.scoop) == 0 && len(b.In) >= n {
		p := b.In[:n:n]
		b.In = b.In[n:]
		j.stats.InBytes += int64(n)
		return p, readOK
	}
	if len(j.scoop) < n {
		take := min(n-len(j.scoop), len(b.In))
		j.scoop = append(j.scoop, b.In[:take]...)
		b.In = b.In[take:]
		j.stats.InBytes += int64(take)
	}
	if len(j.scoop) < n {
		if b.InEOF {
			if len(j.scoop) == 0 {
				return nil, readEOF
			}
			return nil, readShort
		}
		return nil, readBlocked
	}
	p := j.scoop[:n]
	j.scoop = nil
	return p, readOK
}

// readBlockFull is readExact with short-final-block semantics: at end
// of input a partial record is returned as-is with readShort rather
// than treated as an error. Used by the signature producer, whose
// final block may be short.
func (j *Job) readBlockFull(b *Buffers, n int) ([]byte, readStatus) {
	p, st := j.readExact(b, n)
	if st == readShort {
		p = j.scoop
		j.scoop = nil
		return p, readShort
	}
	return p, st
}
