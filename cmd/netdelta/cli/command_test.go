// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{Name: "alpha", Run: func(args []string) error { ran = append(ran, "alpha"); return nil }},
			{Name: "beta", Run: func(args []string) error { ran = append(ran, "beta"); return nil }},
		},
	}
	if err := root.Execute([]string{"beta"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "beta" {
		t.Errorf("ran %v", ran)
	}
}

func TestExecuteUnknownSubcommand(t *testing.T) {
	root := &Command{
		Name:        "tool",
		Subcommands: []*Command{{Name: "alpha", Run: func([]string) error { return nil }}},
	}
	err := root.Execute([]string{"gamma"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var level int
	var rest []string
	cmd := &Command{
		Name: "work",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("work", pflag.ContinueOnError)
			fs.IntVarP(&level, "level", "l", 3, "effort level")
			return fs
		},
		Run: func(args []string) error { rest = args; return nil },
	}
	if err := cmd.Execute([]string{"--level", "7", "input", "output"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if level != 7 {
		t.Errorf("level = %d, want 7", level)
	}
	if len(rest) != 2 || rest[0] != "input" || rest[1] != "output" {
		t.Errorf("positional args = %v", rest)
	}
}

func TestExecuteRejectsUnknownFlag(t *testing.T) {
	cmd := &Command{
		Name: "work",
		Flags: func() *pflag.FlagSet {
			return pflag.NewFlagSet("work", pflag.ContinueOnError)
		},
		Run: func([]string) error { return nil },
	}
	if err := cmd.Execute([]string{"--bogus"}); err == nil {
		t.Error("Execute accepted an unknown flag")
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "tool",
		Summary: "does things",
		Subcommands: []*Command{
			{Name: "alpha", Summary: "first thing"},
			{Name: "beta", Summary: "second thing"},
		},
	}
	var out strings.Builder
	root.PrintHelp(&out)
	help := out.String()
	for _, want := range []string{"alpha", "first thing", "beta", "second thing", "tool <command>"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 104}
	if err.ExitCode() != 104 {
		t.Errorf("ExitCode = %d", err.ExitCode())
	}
	if !strings.Contains(err.Error(), "104") {
		t.Errorf("Error = %q", err.Error())
	}
}
