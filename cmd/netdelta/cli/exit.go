// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a specific exit code without printing an extra
// error message. Command handlers return it when the non-zero exit is
// the message — the protocol result codes double as exit codes, and
// the handler has already reported the failure itself.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The binary's main checks for this
// interface to distinguish "handled non-zero exit" from "unexpected
// error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
