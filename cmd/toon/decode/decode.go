// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decode implements the "toon decode" command.
package decode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/toon"
)

// decodeParams holds the parameters for the decode command. The decoder
// option flags are shared with the validate command.
type decodeParams struct {
	Options cli.DecodeOptionFlags
	Output  string `flag:"output,o" desc:"destination file (default stdout)"`
	Stats   bool   `flag:"stats"    desc:"log throughput statistics to stderr"`
}

// Command returns the "decode" command.
func Command() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a tabular document to JSON records",
		Description: `Decode a tabular document back to a JSON array of objects.

Plain values are coerced by inference (boolean, then number, then date,
then string) unless the header or a --schema file declares a type for
the field, in which case the declared type is enforced. Quoted values
always stay strings. --no-coerce turns inference off entirely.

Empty and literal null values follow the --missing policy: "null"
stores a JSON null, "omit" drops the field from the record, "error"
fails the decode.`,
		Usage: "toon decode [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Decode a document to JSON",
				Command:     "toon decode users.toon",
			},
			{
				Description: "Decode with strict missing-field handling",
				Command:     "toon decode --missing error users.toon",
			},
			{
				Description: "Decode dates stored as epoch seconds",
				Command:     "toon decode --dates unix --schema events.yaml events.toon",
			},
			{
				Description: "Decode dates in a custom layout",
				Command:     "toon decode --date-layout 02/01/2006 --schema legacy.yaml legacy.toon",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most 1 positional argument, got %d", len(args))
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			data, err := cli.ReadInput(path)
			if err != nil {
				return err
			}

			options, err := params.Options.Options()
			if err != nil {
				return err
			}

			records, stats, err := toon.DecodeWithStats(string(data), options)
			if err != nil {
				return err
			}

			if params.Stats {
				logger.Info("decoded",
					"input", cli.InputName(path),
					"records", stats.Records,
					"bytes", stats.Bytes,
					"duration", stats.Duration,
					"records_per_second", stats.RecordsPerSecond,
					"mb_per_second", stats.MBPerSecond,
				)
			}

			// Ensure empty array in JSON output, not null.
			if records == nil {
				records = []toon.Record{}
			}
			out, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal JSON: %w", err)
			}
			return cli.WriteOutput(params.Output, append(out, '\n'))
		},
	}
}
