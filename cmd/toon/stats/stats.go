// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stats implements the "toon stats" command.
package stats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/sizereport"
	"github.com/bureau-foundation/toon/lib/toon"
)

// statsParams holds the parameters for the stats command.
type statsParams struct {
	cli.JSONOutput
	Schema string `flag:"schema,s" desc:"schema file controlling the tabular encoding"`
}

// Command returns the "stats" command.
func Command() *cli.Command {
	var params statsParams

	return &cli.Command{
		Name:    "stats",
		Summary: "Compare wire cost across formats",
		Description: `Encode a record set as a tabular document, as compact JSON, and as
CBOR, and compare their sizes: raw bytes, zstd and lz4 compressed
bytes, and an estimated LLM token count for the text formats.
Compression sizes fall back to the raw size when compressing does not
help.

The input is a JSON array of objects or an already-encoded document
(.toon); documents are decoded first so every format measures the
same records. The table is aligned for terminals and tab-separated
when piped.`,
		Usage: "toon stats [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Size comparison for a record set",
				Command:     "toon stats users.json",
			},
			{
				Description: "Measure an existing document",
				Command:     "toon stats users.toon",
			},
			{
				Description: "Machine-readable report",
				Command:     "toon stats --json users.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("stats", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most 1 positional argument, got %d", len(args))
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			records, err := readRecords(path)
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

			report, err := sizereport.Compare(records, schema)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(report); done {
				return err
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
				writeTable(writer, report)
				if err := writer.Flush(); err != nil {
					return err
				}
			} else {
				writeTable(os.Stdout, report)
			}

			fmt.Printf("\n%d record(s), savings vs JSON: %.1f%% bytes, %.1f%% tokens\n",
				report.Records, report.SavingsVsJSONPercent, report.TokenSavingsVsJSONPercent)
			return nil
		},
	}
}

// readRecords accepts either an encoded document or a JSON array of
// objects. Named files dispatch on extension; stdin and unknown
// extensions are tried as a wire document first (the header line is
// unambiguous) with JSON as the fallback.
func readRecords(path string) ([]toon.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return cli.ReadRecords(path)
	case ".toon":
		data, err := cli.ReadInput(path)
		if err != nil {
			return nil, err
		}
		return decodeDocument(cli.InputName(path), string(data))
	}

	data, err := cli.ReadInput(path)
	if err != nil {
		return nil, err
	}
	if _, err := toon.DecodeSchema(string(data)); err == nil {
		return decodeDocument(cli.InputName(path), string(data))
	}
	return cli.ParseRecords(cli.InputName(path), data)
}

func decodeDocument(name, text string) ([]toon.Record, error) {
	records, err := toon.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return records, nil
}

func writeTable(w io.Writer, report *sizereport.Report) {
	fmt.Fprintf(w, "FORMAT\tBYTES\tZSTD\tLZ4\tTOKENS\n")
	writeRow(w, "toon", report.Tabular)
	writeRow(w, "json", report.JSON)
	writeRow(w, "cbor", report.CBOR)
}

// writeRow prints one format's measurements. Binary formats have no
// token estimate; show a dash instead of a misleading zero.
func writeRow(w io.Writer, name string, size sizereport.FormatSize) {
	tokens := "-"
	if size.TokenEstimate > 0 {
		tokens = fmt.Sprintf("%d", size.TokenEstimate)
	}
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", name, size.Bytes, size.ZstdBytes, size.LZ4Bytes, tokens)
}
