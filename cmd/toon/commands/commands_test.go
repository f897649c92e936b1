// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"testing"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
)

func TestRoot_CommandLayout(t *testing.T) {
	root := Root()
	if root.Name != "toon" {
		t.Fatalf("root name = %q, want toon", root.Name)
	}

	want := []string{"encode", "decode", "validate", "schema", "stats", "version"}
	if len(root.Subcommands) != len(want) {
		t.Fatalf("expected %d subcommands, got %d", len(want), len(root.Subcommands))
	}
	for i, name := range want {
		sub := root.Subcommands[i]
		if sub.Name != name {
			t.Errorf("subcommand %d = %q, want %q", i, sub.Name, name)
		}
		if sub.Summary == "" {
			t.Errorf("subcommand %q has no summary", sub.Name)
		}
	}
}

func TestRoot_SchemaSubcommands(t *testing.T) {
	root := Root()
	var schema *cli.Command
	for _, sub := range root.Subcommands {
		if sub.Name == "schema" {
			schema = sub
		}
	}
	if schema == nil {
		t.Fatal("schema command missing")
	}

	want := []string{"infer", "show", "convert"}
	if len(schema.Subcommands) != len(want) {
		t.Fatalf("expected %d schema subcommands, got %d", len(want), len(schema.Subcommands))
	}
	for i, name := range want {
		if schema.Subcommands[i].Name != name {
			t.Errorf("schema subcommand %d = %q, want %q", i, schema.Subcommands[i].Name, name)
		}
	}
}

// Every command must either run or dispatch; a node with neither is
// unreachable dead weight and Execute would reject it at runtime.
func TestRoot_EveryCommandActionable(t *testing.T) {
	var walk func(path string, c *cli.Command)
	walk = func(path string, c *cli.Command) {
		if c.Run == nil && len(c.Subcommands) == 0 {
			t.Errorf("command %q has neither Run nor subcommands", path)
		}
		for _, sub := range c.Subcommands {
			walk(path+" "+sub.Name, sub)
		}
	}
	root := Root()
	walk(root.Name, root)
}
