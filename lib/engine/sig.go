// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/bureau-foundation/netdelta/lib/proto"
	"github.com/bureau-foundation/netdelta/lib/signature"
	"github.com/bureau-foundation/netdelta/lib/stronghash"
)

// SigBegin starts a signature-generation job: it reads the basis
// stream and writes a signature stream. Zero parameters select the
// recommended defaults for an unknown basis size (see
// [signature.Args]); invalid combinations fail here, before any I/O.
func SigBegin(magic signature.Magic, blockLen, strongLen uint32) (*Job, error) {
	args, err := signature.Args{Magic: magic, BlockLen: blockLen, StrongLen: strongLen}.Resolve(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParam, err)
	}
	j := newJob("signature", (*Job).sigHeader)
	j.sigArgs = args
	j.stats.BlockLen = args.BlockLen
	return j, nil
}

// sigHeader emits magic, block length, and strong-sum length.
func (j *Job) sigHeader(b *Buffers) (Result, error) {
	hdr := make([]byte, 0, 12)
	hdr = proto.AppendUint(hdr, uint64(j.sigArgs.Magic), 4)
	hdr = proto.AppendUint(hdr, uint64(j.sigArgs.BlockLen), 4)
	hdr = proto.AppendUint(hdr, uint64(j.sigArgs.StrongLen), 4)
	j.emit(hdr)
	j.step = (*Job).sigGenerate
	return Running, nil
}

// sigGenerate emits one (weak, strong) entry per block. The weak sum
// is freshly initialized for every block; the strong sum is keyed by
// the format magic and truncated to the configured width.
func (j *Job) sigGenerate(b *Buffers) (Result, error) {
	block, st := j.readBlockFull(b, int(j.sigArgs.BlockLen))
	switch st {
	case readBlocked:
		return Blocked, nil
	case readEOF:
		return Done, nil
	}

	rs := j.sigArgs.Magic.NewRollsum()
	rs.Update(block)
	strong := stronghash.Sum(j.sigArgs.Magic.Algorithm(), j.sigArgs.Magic.Key(), block)

	entry := make([]byte, 0, 4+j.sigArgs.StrongLen)
	entry = proto.AppendUint(entry, uint64(rs.Digest()), 4)
	entry = append(entry, strong[:j.sigArgs.StrongLen]...)
	j.emit(entry)

	j.stats.SigBlocks++
	j.stats.SigCmds++
	j.stats.SigBytes += int64(len(entry))

	if st == readShort {
		// Short final block: the stream is over.
		return Done, nil
	}
	return Running, nil
}
