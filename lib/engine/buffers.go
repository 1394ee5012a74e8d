// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

// Buffers carries the caller-owned input and output windows for one
// Iter call. Iter consumes from the front of In and fills the front of
// Out, re-slicing both; on return, In is the unconsumed remainder and
// Out is the unfilled remainder, so the struct is ready for the next
// call. The caller computes the number of produced bytes as the
// difference between its buffer length and len(Out).
//
// InEOF promises that no input exists beyond In. Setting it back to
// false after a call observed it true is undefined. It is valid to
// call Iter with empty In just to drain held-back output.
type Buffers struct {
	In    []byte
	InEOF bool
	Out   []byte
}
