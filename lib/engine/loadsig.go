// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/signature"
)

// LoadSigBegin starts a job that parses a signature stream into an
// in-memory [signature.Table]. After the job returns Done, fetch the
// table with [Job.Signature] and call its BuildIndex before handing it
// to DeltaBegin.
func LoadSigBegin() *Job {
	return newJob("loadsig", (*Job).loadMagicState)
}

// Signature returns the table a loadsig job produced, or an error if
// the job has not completed.
func (j *Job) Signature() (*signature.Table, error) {
	if !j.done || j.table == nil {
		return nil, fmt.Errorf("%w: signature load not complete", ErrParam)
	}
	return j.table, nil
}

// loadMagicState reads and checks the 4-byte stream magic.
func (j *Job) loadMagicState(b *Buffers) (Result, error) {
	p, st := j.readExact(b, 4)
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF, readShort:
		return InputEnded, fmt.Errorf("%w: reading signature magic", ErrInputEnded)
	}
	magic := signature.Magic(proto.Uint(p))
	if !magic.IsSignature() {
		return BadMagic, fmt.Errorf("%w: %#08x is not a signature format", ErrBadMagic, uint32(magic))
	}
	j.loadMagic = magic
	j.step = (*Job).loadHeader
	return Running, nil
}

// loadHeader reads and validates block length and strong-sum length,
// then allocates the table.
func (j *Job) loadHeader(b *Buffers) (Result, error) {
	p, st := j.readExact(b, 8)
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF, readShort:
		return InputEnded, fmt.Errorf("%w: reading signature header", ErrInputEnded)
	}
	blockLen := proto.Uint(p[:4])
	strongLen := proto.Uint(p[4:])
	if blockLen < signature.MinBlockLen || blockLen > signature.MaxBlockLen {
		return Corrupt, fmt.Errorf("%w: block length %d outside [%d, %d]",
			ErrCorrupt, blockLen, signature.MinBlockLen, signature.MaxBlockLen)
	}
	if strongLen < 1 || strongLen > uint64(j.loadMagic.MaxStrongLen()) {
		return Corrupt, fmt.Errorf("%w: strong sum length %d outside [1, %d] for %v",
			ErrCorrupt, strongLen, j.loadMagic.MaxStrongLen(), j.loadMagic)
	}

	table, err := signature.New(j.loadMagic, uint32(blockLen), uint32(strongLen))
	if err != nil {
		return Corrupt, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	j.table = table
	j.stats.BlockLen = uint32(blockLen)
	j.step = (*Job).loadEntry
	return Running, nil
}

// loadEntry appends (weak, strong) entries until the stream ends.
// A clean end between entries completes the job; an end inside an
// entry is an input error.
func (j *Job) loadEntry(b *Buffers) (Result, error) {
	entrySize := 4 + int(j.table.StrongLen())
	p, st := j.readExact(b, entrySize)
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF:
		return Done, nil
	case readShort:
		return InputEnded, fmt.Errorf("%w: signature ends inside an entry", ErrInputEnded)
	}
	if err := j.table.Append(uint32(proto.Uint(p[:4])), p[4:]); err != nil {
		return InternalError, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	j.stats.SigCmds++
	j.stats.SigBytes += int64(entrySize)
	j.stats.SigBlocks++
	return Running, nil
}
