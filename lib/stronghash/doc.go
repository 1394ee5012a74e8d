// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stronghash computes the strong block digests that confirm
// weak-checksum matches. The weak rolling checksum is only 32 bits, so
// collisions between unrelated blocks are routine; the strong digest is
// what decides whether two blocks really hold the same bytes.
//
// Two algorithms exist, selected by the signature file format:
//
//   - BLAKE2b, keyed with the 4-byte format magic. Keying separates
//     the hash domains of the different signature formats, so the same
//     block never produces the same digest under two formats.
//   - MD4, unkeyed. Retained only for compatibility with old
//     signature files. MD4 is cryptographically broken; an attacker
//     who controls file content can manufacture block collisions.
//     Never use it on untrusted data.
//
// Digests are always computed at full width (16 bytes for MD4, 32 for
// BLAKE2b) and truncated to the signature's strong-sum length at
// comparison and serialization time.
package stronghash
