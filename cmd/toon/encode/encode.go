// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package encode implements the "toon encode" command.
package encode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/toon"
)

// encodeParams holds the parameters for the encode command.
type encodeParams struct {
	Schema string `flag:"schema,s" desc:"schema file controlling field order and declared types"`
	Output string `flag:"output,o" desc:"destination file (default stdout)"`
	Stats  bool   `flag:"stats"    desc:"log throughput statistics to stderr"`
}

// Command returns the "encode" command.
func Command() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode JSON records as a tabular document",
		Description: `Encode a JSON array of objects as a tabular document: one header line
declaring the record count and field layout, then one line per record.

The input is a JSON or JSONC array of objects, read from a file or from
stdin. Without --schema the field layout is inferred from the first
record, with fields in lexicographic order. A schema file pins the
field order; declared scalar types never appear in the header, they
matter when the document is decoded.`,
		Usage: "toon encode [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Encode a file of records",
				Command:     "toon encode users.json",
			},
			{
				Description: "Encode from stdin with a schema",
				Command:     "curl -s https://api.example.com/users | toon encode --schema users.yaml",
			},
			{
				Description: "Write to a file and report throughput",
				Command:     "toon encode --stats -o users.toon users.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
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

			var schema *toon.Schema
			if params.Schema != "" {
				schema, err = schemafile.Load(params.Schema)
				if err != nil {
					return err
				}
			}

			text, stats, err := toon.EncodeWithStats(records, schema)
			if err != nil {
				return err
			}

			if params.Stats {
				logger.Info("encoded",
					"input", cli.InputName(path),
					"records", stats.Records,
					"bytes", stats.Bytes,
					"duration", stats.Duration,
					"records_per_second", stats.RecordsPerSecond,
					"mb_per_second", stats.MBPerSecond,
				)
			}

			return cli.WriteOutput(params.Output, []byte(text+"\n"))
		},
	}
}
