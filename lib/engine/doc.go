// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine runs the streaming delta operations: signature
// generation, signature loading, delta generation, and patch
// application. Each operation is a [Job] — a pull-driven state machine
// advanced by repeated [Job.Iter] calls over caller-owned buffers.
//
// The caller decides when and how much I/O happens. Iter consumes
// whatever input is available, produces whatever output fits, and
// returns [Blocked] when it can go no further; the caller refills the
// input or drains the output and calls again. No Job ever performs
// I/O itself, so the engine drops into any event loop, pipe, or
// transport unchanged. [Job.Drive] wraps the common case of pumping a
// job between an io.Reader and io.Writer, and the whole-file helpers
// ([SigFile], [LoadSigFile], [DeltaFile], [PatchFile]) wrap Drive for
// one-call use.
//
// Internally a job owns a small "tube": held-back output that did not
// fit the last output buffer, and an input scoop that accumulates
// short reads until a whole record (a header, a command, a block) is
// present. State functions therefore always see complete records —
// zero-copy from the caller's buffer when it already holds enough —
// and never partial ones.
//
// A job is single-threaded; distinct jobs are independent. A signature
// table is read-only during delta generation and may be shared by
// concurrent delta jobs.
package engine
