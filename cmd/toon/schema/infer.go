// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/toon"
)

// inferParams holds the parameters for the schema infer command.
type inferParams struct {
	Output      string `flag:"output,o"    desc:"destination schema file, format by extension (default stdout)"`
	Format      string `flag:"format"      desc:"stdout format: yaml or json" default:"yaml"`
	Description string `flag:"description" desc:"description recorded in the schema"`
}

// inferCommand returns the "infer" subcommand for deriving a schema
// from a record sequence.
func inferCommand() *cli.Command {
	var params inferParams

	return &cli.Command{
		Name:    "infer",
		Summary: "Derive a schema from JSON records",
		Description: `Derive a schema from the first record of a JSON array of objects.
Field order is the lexicographic order of the record's keys; nested
objects and arrays of objects become object and array fields. Scalar
fields are left untyped, so decoding stays inference-driven until
types are declared by hand.

The result is written to stdout in the --format encoding, or to
--output with the format chosen by the file extension.`,
		Usage: "toon schema infer [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Print an inferred schema",
				Command:     "toon schema infer users.json",
			},
			{
				Description: "Save the schema for later encodes",
				Command:     "toon schema infer -o users.yaml users.json",
			},
			{
				Description: "JSON on stdout for further tooling",
				Command:     "toon schema infer --format json users.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("infer", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most 1 positional argument, got %d", len(args))
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			records, err := cli.ReadRecords(path)
			if err != nil {
				return err
			}

			inferred, err := toon.InferSchema(records)
			if err != nil {
				return err
			}
			if params.Description != "" {
				inferred.Description = params.Description
			}

			if params.Output == "" || params.Output == "-" {
				var data []byte
				switch params.Format {
				case "", "yaml":
					data, err = schemafile.MarshalYAML(inferred)
				case "json":
					data, err = schemafile.MarshalJSON(inferred)
				default:
					return fmt.Errorf("unknown format %q (expected yaml or json)", params.Format)
				}
				if err != nil {
					return err
				}
				return cli.WriteOutput("", data)
			}
			return schemafile.Save(params.Output, inferred)
		},
	}
}
