// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version exposes the netdelta build version.
package version

// version is overridden at build time via
// -ldflags "-X .../lib/version.version=v1.2.3".
var version = "dev"

// Info returns the version string baked into the binary.
func Info() string { return version }
