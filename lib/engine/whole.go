// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/netdelta/lib/signature"
)

// Default I/O buffer sizes for Drive and the whole-file helpers.
// Overridable for testing odd buffer geometries; larger buffers mean
// fewer Iter calls and more zero-copy record reads.
var (
	DefaultInBufSize  = 64 * 1024
	DefaultOutBufSize = 64 * 1024
)

// Drive pumps a job to completion between a reader and a writer,
// allocating the intermediate buffers. in may be nil for jobs that
// take no input and out may be nil for jobs that produce none (the
// signature loader). The job's terminal error, a read error, or a
// write error is returned; read and write errors carry their original
// error for errors.Is.
func (j *Job) Drive(in io.Reader, out io.Writer) error {
	inBuf := make([]byte, DefaultInBufSize)
	outBuf := make([]byte, DefaultOutBufSize)

	b := Buffers{}
	for {
		if len(b.In) == 0 && !b.InEOF {
			if in == nil {
				b.InEOF = true
			} else {
				n, err := in.Read(inBuf)
				if err == io.EOF {
					b.InEOF = true
				} else if err != nil {
					return fmt.Errorf("reading %s input: %w", j.op, err)
				}
				b.In = inBuf[:n]
			}
		}
		b.Out = outBuf

		res, iterErr := j.Iter(&b)

		if produced := len(outBuf) - len(b.Out); produced > 0 && out != nil {
			if _, err := out.Write(outBuf[:produced]); err != nil {
				return fmt.Errorf("writing %s output: %w", j.op, err)
			}
		}
		if iterErr != nil {
			return iterErr
		}
		if res == Done {
			return nil
		}
	}
}

// SigFile generates the signature of basis and writes it to sig in
// one call. Zero parameters select recommended defaults. If stats is
// non-nil it receives the job's final counters.
func SigFile(basis io.Reader, sig io.Writer, magic signature.Magic, blockLen, strongLen uint32, stats *Stats) error {
	j, err := SigBegin(magic, blockLen, strongLen)
	if err != nil {
		return err
	}
	err = j.Drive(basis, sig)
	if stats != nil {
		*stats = j.Statistics()
	}
	return err
}

// LoadSigFile parses a signature stream into a table. The caller must
// still run BuildIndex before generating deltas against it.
func LoadSigFile(sig io.Reader, stats *Stats) (*signature.Table, error) {
	j := LoadSigBegin()
	err := j.Drive(sig, nil)
	if stats != nil {
		*stats = j.Statistics()
	}
	if err != nil {
		return nil, err
	}
	return j.Signature()
}

// DeltaFile generates a delta from an indexed signature table and the
// new stream.
func DeltaFile(sig *signature.Table, newFile io.Reader, delta io.Writer, stats *Stats) error {
	j, err := DeltaBegin(sig)
	if err != nil {
		return err
	}
	err = j.Drive(newFile, delta)
	if stats != nil {
		*stats = j.Statistics()
	}
	return err
}

// PatchFile applies a delta to a random-access basis, writing the
// reconstructed file.
func PatchFile(basis io.ReaderAt, delta io.Reader, out io.Writer, stats *Stats) error {
	j := PatchBegin(FileBasis(basis))
	err := j.Drive(delta, out)
	if stats != nil {
		*stats = j.Statistics()
	}
	return err
}

// FileBasis adapts an io.ReaderAt into a [CopyFunc]. Reads that run
// off the end of the basis return the bytes that exist; a read fully
// past the end returns zero bytes, which the patch engine reports as
// a corrupt delta.
func FileBasis(r io.ReaderAt) CopyFunc {
	return func(pos int64, buf []byte) (int, error) {
		n, err := r.ReadAt(buf, pos)
		if n > 0 || err == io.EOF {
			return n, nil
		}
		return n, err
	}
}
