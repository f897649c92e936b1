// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/schemafile"
)

// convertCommand returns the "convert" subcommand for rewriting a
// schema file in another format.
func convertCommand() *cli.Command {
	return &cli.Command{
		Name:    "convert",
		Summary: "Rewrite a schema file in another format",
		Description: `Load a schema file and save it under a new path, with the output
format chosen by the destination's file extension. Comments from a
JSONC source are not preserved.`,
		Usage: "toon schema convert <input> <output>",
		Examples: []cli.Example{
			{
				Description: "YAML to JSON",
				Command:     "toon schema convert users.yaml users.json",
			},
			{
				Description: "Commented JSONC to plain YAML",
				Command:     "toon schema convert users.jsonc users.yaml",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("expected 2 positional arguments, got %d\n\nusage: toon schema convert <input> <output>", len(args))
			}

			loaded, err := schemafile.Load(args[0])
			if err != nil {
				return err
			}
			return schemafile.Save(args[1], loaded)
		},
	}
}
