// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema implements the "toon schema" command group: inferring
// schemas from records, inspecting schema files, and converting them
// between formats.
package schema

import (
	"github.com/bureau-foundation/toon/cmd/toon/cli"
)

// Command returns the "schema" command with its subcommands.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Infer, inspect, and convert schema files",
		Description: `Work with schema files. A schema pins the field order of a document,
declares field types for strict coercion, and describes nested object
and array layouts. Schema files are YAML or JSON (with comments),
selected by file extension.`,
		Subcommands: []*cli.Command{
			inferCommand(),
			showCommand(),
			convertCommand(),
		},
	}
}
