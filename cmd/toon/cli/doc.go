// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the toon CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/toon/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Flag sets are usually built from tagged params structs via
// [FlagsFromParams]; see params.go for the tag grammar. Shared flag
// groups compose by embedding: [JSONOutput] adds --json, and
// [DecodeOptionFlags] adds the decoding policy flags and converts them
// into a toon.DecodeOptions.
//
// Input helpers ([ReadInput], [ReadRecords], [WriteOutput]) give every
// command the same stdin/stdout conventions: a path of "-" or the empty
// string means the standard stream, so commands compose in pipelines.
package cli
