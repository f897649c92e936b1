// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete toon CLI command tree. The toon
// binary and its tests import this package as the single source of
// truth for the command layout.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	decodecmd "github.com/bureau-foundation/toon/cmd/toon/decode"
	encodecmd "github.com/bureau-foundation/toon/cmd/toon/encode"
	schemacmd "github.com/bureau-foundation/toon/cmd/toon/schema"
	statscmd "github.com/bureau-foundation/toon/cmd/toon/stats"
	validatecmd "github.com/bureau-foundation/toon/cmd/toon/validate"
	"github.com/bureau-foundation/toon/lib/version"
)

// Root builds and returns the complete toon CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "toon",
		Description: `toon: tabular serialization for record sequences.

Convert between JSON arrays of objects and a compact line-oriented
text format with a declared record count, schema-aware decoding, and
deterministic type coercion.`,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("toon", pflag.ContinueOnError)
			fs.BoolP("verbose", "v", false, "enable debug logging for any subcommand")
			return fs
		},
		Subcommands: []*cli.Command{
			encodecmd.Command(),
			decodecmd.Command(),
			validatecmd.Command(),
			schemacmd.Command(),
			statscmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("toon %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Encode a file of records",
				Command:     "toon encode users.json",
			},
			{
				Description: "Decode back to JSON",
				Command:     "toon decode users.toon",
			},
			{
				Description: "Round-trip through a pipeline",
				Command:     "toon encode users.json | toon decode",
			},
			{
				Description: "Derive a schema and encode against it",
				Command:     "toon schema infer -o users.yaml users.json && toon encode --schema users.yaml users.json",
			},
			{
				Description: "Check a document before shipping it",
				Command:     "toon validate --missing error users.toon",
			},
			{
				Description: "Compare wire cost against JSON and CBOR",
				Command:     "toon stats users.json",
			},
		},
	}
}
