// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rollsum implements the 32-bit rolling weak checksums used in
// block signatures. A rolling checksum covers a window of bytes and can
// slide that window one byte at a time in O(1): Rotate drops the oldest
// byte and appends a new one without touching the bytes in between.
//
// Two variants exist and are selected by the signature file format:
//
//   - [Classic] -- the adler32-style sum of two 16-bit halves. Cheap,
//     but weak against clustered inputs (runs of zeros all hash alike).
//   - [RabinKarp] -- a polynomial hash with a fixed odd multiplier.
//     Better mixing for the same cost; the recommended variant.
//
// Both support a non-rolling fill mode (Rollin) for priming the window
// at the start of a scan or a block, and Rollout for shrinking the
// window when the input ends and no new byte is available to rotate in.
//
// Implementations are plain structs with no internal locking. A zero
// value is not ready for use; call Reset or use the New constructors.
package rollsum
