// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/toon"
)

// showParams holds the parameters for the schema show command.
type showParams struct {
	cli.JSONOutput
}

// showCommand returns the "show" subcommand for inspecting a schema.
func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print the fields of a schema file or document header",
		Description: `Print the field layout of a schema. The input is either a schema file
(.yaml, .yml, .json, .jsonc) or an encoded document (.toon or stdin),
in which case the schema embedded in the header line is shown. Nested
object and array fields are indented under their parent. With --json
the canonical JSON form of the schema is printed instead.`,
		Usage: "toon schema show [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Inspect a schema file",
				Command:     "toon schema show users.yaml",
			},
			{
				Description: "Show the header schema of a document",
				Command:     "toon schema show users.toon",
			},
			{
				Description: "Canonical JSON form",
				Command:     "toon schema show --json users.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most 1 positional argument, got %d\n\nusage: toon schema show [flags] [input]", len(args))
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}

			loaded, err := loadSchema(input)
			if err != nil {
				return err
			}

			if params.OutputJSON {
				data, err := schemafile.MarshalJSON(loaded)
				if err != nil {
					return err
				}
				return cli.WriteOutput("", data)
			}

			if loaded.Version != "" {
				fmt.Printf("version: %s\n", loaded.Version)
			}
			if loaded.Description != "" {
				fmt.Printf("description: %s\n", loaded.Description)
			}
			if !loaded.CreatedAt.IsZero() {
				fmt.Printf("created: %s\n", loaded.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "FIELD\tTYPE\n")
			writeFields(writer, loaded.Fields, "")
			return writer.Flush()
		},
	}
}

// loadSchema reads a schema from a schema document or from the header
// of an encoded document. Named files dispatch on extension. Stdin and
// unknown extensions are sniffed: a valid wire header wins, then JSON
// when the text opens with "{", then YAML.
func loadSchema(path string) (*toon.Schema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".jsonc":
		return schemafile.Load(path)
	case ".toon":
		data, err := cli.ReadInput(path)
		if err != nil {
			return nil, err
		}
		return toon.DecodeSchema(string(data))
	}

	data, err := cli.ReadInput(path)
	if err != nil {
		return nil, err
	}
	if parsed, err := toon.DecodeSchema(string(data)); err == nil {
		return parsed, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return schemafile.ParseJSON(data)
	}
	return schemafile.ParseYAML(data)
}

// writeFields prints one row per field, indenting nested object
// properties and array item fields under their parent.
func writeFields(writer *tabwriter.Writer, fields []toon.Field, indent string) {
	for _, field := range fields {
		fmt.Fprintf(writer, "%s%s\t%s\n", indent, field.Name, typeLabel(field.Type))
		switch field.Type {
		case toon.TypeObject:
			writeFields(writer, field.Properties, indent+"  ")
		case toon.TypeArray:
			writeFields(writer, field.Items, indent+"  ")
		}
	}
}

// typeLabel renders a field type for display. An empty type means the
// field is decoded by inference.
func typeLabel(t toon.FieldType) string {
	if t == "" {
		return "(untyped)"
	}
	return string(t)
}
