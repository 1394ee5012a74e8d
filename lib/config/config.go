// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the netdelta
// command line. Configuration supplies defaults for flags the user
// did not pass; explicit flags always win.
//
// Configuration is loaded from a single file specified by:
//   - the NETDELTA_CONFIG environment variable, or
//   - the --config flag passed to the command
//
// There are no fallbacks and no automatic discovery. This keeps
// behavior deterministic and auditable: no hidden per-user overrides
// change what a scripted invocation does.
//
// Files ending in .json or .jsonc are parsed as JSONC (JSON with
// comments and trailing commas); anything else is YAML.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted by Load.
const EnvVar = "NETDELTA_CONFIG"

// Config holds tool defaults.
type Config struct {
	// BlockLen is the default signature block length in bytes.
	// Zero keeps the engine's default of 2048 bytes; the basis size
	// is not consulted.
	BlockLen uint32 `yaml:"block_len" json:"block_len"`

	// StrongLen is the default truncated strong-sum width in bytes.
	// Zero keeps the engine's recommendation.
	StrongLen uint32 `yaml:"strong_len" json:"strong_len"`

	// Rollsum selects the rolling checksum: "rabinkarp" (default)
	// or "classic".
	Rollsum string `yaml:"rollsum" json:"rollsum"`

	// Hash selects the strong hash: "blake2" (default) or "md4".
	Hash string `yaml:"hash" json:"hash"`

	// Compress names the codec applied to signature and delta
	// output files: "none" (default), "gzip", "zstd", or "lz4".
	Compress string `yaml:"compress" json:"compress"`

	// Force overwrites existing output files without complaint.
	Force bool `yaml:"force" json:"force"`
}

// Default returns the built-in defaults: recommended engine
// parameters, no compression, no overwriting.
func Default() Config {
	return Config{Rollsum: "rabinkarp", Hash: "blake2", Compress: "none"}
}

// Load reads configuration from the file named by NETDELTA_CONFIG,
// or returns Default when the variable is unset.
func Load() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path. Unset fields keep their
// defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Rollsum {
	case "", "classic", "rabinkarp":
	default:
		return fmt.Errorf("unknown rollsum %q (want classic or rabinkarp)", c.Rollsum)
	}
	switch c.Hash {
	case "", "md4", "blake2":
	default:
		return fmt.Errorf("unknown hash %q (want md4 or blake2)", c.Hash)
	}
	switch c.Compress {
	case "", "none", "gzip", "zstd", "lz4":
	default:
		return fmt.Errorf("unknown compression %q (want none, gzip, zstd, or lz4)", c.Compress)
	}
	return nil
}
