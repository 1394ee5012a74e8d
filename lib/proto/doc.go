// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package proto defines the binary command protocol shared by delta
// producers and patch appliers: the LITERAL/COPY/END instruction set,
// the per-command-byte descriptor table, and the big-endian parameter
// encoding.
//
// A single immutable table ([Lookup]) describes all 256 command bytes:
// the command kind, the widths of its one or two parameters, and
// whether the first parameter is immediate (encoded in the command
// byte itself). Encoding and decoding both consult this table, so the
// two directions cannot drift apart.
//
// The encoders always pick the shortest representation: immediate
// literals for lengths 1..64, then the narrowest parameter widths that
// hold the values. All multi-byte parameters are big-endian unsigned
// integers.
package proto
