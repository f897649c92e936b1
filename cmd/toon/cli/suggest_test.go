// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"encode", "encoed", 2},
		{"decode", "decde", 1},
		{"schema", "shcema", 2},
		{"validate", "validte", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"/"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abd"},
		{"hello", "helo"},
		{"encode", "encdoe"},
	}

	for _, pair := range pairs {
		forward := levenshtein(pair[0], pair[1])
		reverse := levenshtein(pair[1], pair[0])
		if forward != reverse {
			t.Errorf("levenshtein(%q, %q) = %d, but reverse = %d",
				pair[0], pair[1], forward, reverse)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "encode"},
		{Name: "decode"},
		{Name: "validate"},
		{Name: "schema"},
		{Name: "stats"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"encdoe", "encode"},     // transposition
		{"decde", "decode"},      // missing letter
		{"shcema", "schema"},     // transposition
		{"validte", "validate"},  // missing letter
		{"verison", "version"},   // transposition
		{"stat", "stats"},        // missing letter
		{"zzzzzzzzz", ""},        // nothing close
		{"e", ""},                // too short to match well
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got := suggestCommand(test.input, commands)
			if got != test.want {
				t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	makeFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.Bool("no-coerce", false, "")
		flagSet.String("missing", "null", "")
		flagSet.String("dates", "auto", "")
		flagSet.StringP("schema", "s", "", "")
		flagSet.StringP("output", "o", "", "")
		flagSet.Bool("json", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "close typo with double dash",
			args: []string{"--mising"},
			want: "--missing",
		},
		{
			name: "close typo with single dash",
			args: []string{"-mising"},
			want: "--missing",
		},
		{
			name: "no-coerce typo",
			args: []string{"--no-corce"},
			want: "--no-coerce",
		},
		{
			name: "schema typo",
			args: []string{"--shcema"},
			want: "--schema",
		},
		{
			name: "nothing close",
			args: []string{"--zzzzzzzzz"},
			want: "",
		},
		{
			name: "no flags",
			args: []string{"positional"},
			want: "",
		},
		{
			name: "flag with equals",
			args: []string{"--mising=error"},
			want: "--missing",
		},
		{
			name: "valid shorthand skipped",
			args: []string{"-o", "out.json", "--dattes"},
			want: "--dates",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := suggestFlag(test.args, makeFlagSet())
			if got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
