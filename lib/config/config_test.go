// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeConfig(t, "netdelta.yaml", `
block_len: 4096
strong_len: 16
rollsum: classic
hash: md4
compress: zstd
force: true
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BlockLen != 4096 || cfg.StrongLen != 16 {
		t.Errorf("sizes = %d/%d", cfg.BlockLen, cfg.StrongLen)
	}
	if cfg.Rollsum != "classic" || cfg.Hash != "md4" || cfg.Compress != "zstd" || !cfg.Force {
		t.Errorf("loaded %+v", cfg)
	}
}

func TestLoadFileJSONC(t *testing.T) {
	path := writeConfig(t, "netdelta.jsonc", `{
	// comments are allowed here
	"block_len": 1024,
	"compress": "lz4", // and trailing commas
}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BlockLen != 1024 || cfg.Compress != "lz4" {
		t.Errorf("loaded %+v", cfg)
	}
	// Unset fields keep defaults.
	if cfg.Rollsum != "rabinkarp" || cfg.Hash != "blake2" {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"rollsum":  "rollsum: crc32",
		"hash":     "hash: sha1",
		"compress": "compress: brotli",
	}
	for name, content := range cases {
		path := writeConfig(t, name+".yaml", content)
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: LoadFile accepted %q", name, content)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile accepted a missing file")
	}
}

func TestLoadWithoutEnvVar(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load without %s = %+v, want defaults", EnvVar, cfg)
	}
}

func TestLoadWithEnvVar(t *testing.T) {
	path := writeConfig(t, "env.yaml", "block_len: 512")
	t.Setenv(EnvVar, path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BlockLen != 512 {
		t.Errorf("BlockLen = %d, want 512", cfg.BlockLen)
	}
}
