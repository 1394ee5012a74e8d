// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package signature holds the in-memory model of a block signature:
// the stream format magics, the ordered (weak, strong) entry table,
// and the hash index that makes delta search fast.
//
// A signature describes the "old" side of a delta operation, one entry
// per fixed-size block. The weak sum is a 32-bit rolling checksum used
// as a cheap first-stage filter; the strong sum is a truncated
// cryptographic digest that confirms a candidate match. Weak-sum
// collisions are expected and harmless — the index stores every entry
// and lookups walk all candidates sharing a weak sum.
//
// Typical use: a loader populates a [Table] entry by entry, the caller
// invokes [Table.BuildIndex] once, and one or more delta operations
// then query it concurrently with [Table.FindMatch]. A table is
// read-only after indexing; concurrent readers need no locking.
package signature
