// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strings"
	"time"
)

// Stats accumulates performance counters across one operation. A copy
// is available at any time through [Job.Statistics]; the struct also
// carries cbor and json tags so tooling can dump it in machine form.
type Stats struct {
	// Op names the operation: "signature", "loadsig", "delta", or
	// "patch".
	Op string `cbor:"op" json:"op"`

	LitCmds     int64 `cbor:"lit_cmds"     json:"lit_cmds"`
	LitBytes    int64 `cbor:"lit_bytes"    json:"lit_bytes"`
	LitCmdBytes int64 `cbor:"lit_cmdbytes" json:"lit_cmdbytes"`

	CopyCmds     int64 `cbor:"copy_cmds"     json:"copy_cmds"`
	CopyBytes    int64 `cbor:"copy_bytes"    json:"copy_bytes"`
	CopyCmdBytes int64 `cbor:"copy_cmdbytes" json:"copy_cmdbytes"`

	SigCmds  int64 `cbor:"sig_cmds"  json:"sig_cmds"`
	SigBytes int64 `cbor:"sig_bytes" json:"sig_bytes"`

	// FalseMatches counts weak-checksum hits that failed strong
	// confirmation during delta generation.
	FalseMatches int64 `cbor:"false_matches" json:"false_matches"`

	// SigBlocks is the number of blocks the signature describes.
	SigBlocks int64 `cbor:"sig_blocks" json:"sig_blocks"`

	// BlockLen is the signature block length in bytes.
	BlockLen uint32 `cbor:"block_len" json:"block_len"`

	// InBytes and OutBytes are total stream bytes consumed and
	// produced.
	InBytes  int64 `cbor:"in_bytes"  json:"in_bytes"`
	OutBytes int64 `cbor:"out_bytes" json:"out_bytes"`

	Start time.Time `cbor:"start" json:"start"`
	End   time.Time `cbor:"end"   json:"end"`
}

// String renders the counters in a compact single-line form suitable
// for logs. Only sections relevant to the operation appear.
func (s *Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s statistics: ", s.Op)
	if s.LitCmds > 0 || s.Op == "delta" || s.Op == "patch" {
		fmt.Fprintf(&b, "literal[%d cmds, %d bytes, %d cmdbytes] ",
			s.LitCmds, s.LitBytes, s.LitCmdBytes)
	}
	if s.Op == "delta" {
		fmt.Fprintf(&b, "copy[%d cmds, %d bytes, %d false, %d cmdbytes] ",
			s.CopyCmds, s.CopyBytes, s.FalseMatches, s.CopyCmdBytes)
	} else if s.CopyCmds > 0 {
		fmt.Fprintf(&b, "copy[%d cmds, %d bytes, %d cmdbytes] ",
			s.CopyCmds, s.CopyBytes, s.CopyCmdBytes)
	}
	if s.SigCmds > 0 || s.SigBlocks > 0 {
		fmt.Fprintf(&b, "signature[%d cmds, %d bytes, %d blocks, %d blocklen] ",
			s.SigCmds, s.SigBytes, s.SigBlocks, s.BlockLen)
	}
	fmt.Fprintf(&b, "in %d, out %d bytes", s.InBytes, s.OutBytes)
	if !s.End.IsZero() && s.End.After(s.Start) {
		fmt.Fprintf(&b, ", %.3fs", s.End.Sub(s.Start).Seconds())
	}
	return b.String()
}
