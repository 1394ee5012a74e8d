// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import "errors"

// Result is the status of a job iteration. The numeric values are
// protocol constants, stable across releases; the CLI uses them as
// exit codes.
type Result int

const (
	// Done means the operation completed successfully.
	Done Result = 0
	// Blocked means the job needs more input or more output space.
	Blocked Result = 1
	// Running is internal: the state machine can keep going without
	// new buffers. Never returned by Iter.
	Running Result = 2
	// IOError covers failures in the caller's readers, writers, or
	// basis callback.
	IOError Result = 100
	// MemError reports an allocation failure.
	MemError Result = 102
	// InputEnded means the input stream ended mid-record.
	InputEnded Result = 103
	// BadMagic means the stream prefix is not a recognized magic.
	BadMagic Result = 104
	// Unimplemented reports a recognized but unsupported request.
	Unimplemented Result = 105
	// Corrupt reports a structurally impossible value in the stream.
	Corrupt Result = 106
	// InternalError reports an invariant violation — a library bug.
	InternalError Result = 107
	// ParamError reports invalid arguments to a begin function.
	ParamError Result = 108
)

// String returns a short description, in the style of strerror.
func (r Result) String() string {
	switch r {
	case Done:
		return "OK"
	case Blocked:
		return "blocked waiting for more data"
	case Running:
		return "still running"
	case IOError:
		return "IO error"
	case MemError:
		return "out of memory"
	case InputEnded:
		return "unexpected end of input"
	case BadMagic:
		return "bad magic number at start of stream"
	case Unimplemented:
		return "unimplemented case"
	case Corrupt:
		return "stream corrupt"
	case InternalError:
		return "library internal error"
	case ParamError:
		return "bad parameter"
	default:
		return "unexplained problem"
	}
}

// Sentinel errors for the protocol failure kinds. Errors returned by
// Iter wrap one of these (or are caller errors passed through from a
// reader, writer, or basis callback); test with errors.Is.
var (
	ErrInputEnded    = errors.New("unexpected end of input")
	ErrBadMagic      = errors.New("bad magic number at start of stream")
	ErrCorrupt       = errors.New("stream corrupt")
	ErrUnimplemented = errors.New("unimplemented case")
	ErrInternal      = errors.New("library internal error")
	ErrParam         = errors.New("bad parameter")
)

// ResultOf maps an error from Iter (or the whole-file helpers) to its
// Result code. Caller-supplied errors that wrap none of the sentinels
// map to IOError; nil maps to Done.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return Done
	case errors.Is(err, ErrInputEnded):
		return InputEnded
	case errors.Is(err, ErrBadMagic):
		return BadMagic
	case errors.Is(err, ErrCorrupt):
		return Corrupt
	case errors.Is(err, ErrUnimplemented):
		return Unimplemented
	case errors.Is(err, ErrInternal):
		return InternalError
	case errors.Is(err, ErrParam):
		return ParamError
	default:
		return IOError
	}
}
