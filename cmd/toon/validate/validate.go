// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate implements the "toon validate" command.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/toon"
)

// validateParams holds the parameters for the validate command. It
// accepts the full decoder flag group so a document can be checked
// under the exact options a consumer will decode it with.
type validateParams struct {
	cli.JSONOutput
	Options cli.DecodeOptionFlags
}

// result is the validation outcome for one document. Line and Field
// carry the structured error context when the decoder reports one.
type result struct {
	Input   string `json:"input"`
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
	Line    int    `json:"line,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Command returns the "validate" command.
func Command() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that a tabular document decodes cleanly",
		Description: `Decode a tabular document and report whether it is well formed. The
document is checked under the same decoder options the decode command
accepts, so a pipeline can verify a document exactly as its consumer
will read it.

Exits 0 for a valid document and 1 for an invalid one, printing the
failing line and field when the decoder identifies them.`,
		Usage: "toon validate [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Validate a document",
				Command:     "toon validate users.toon",
			},
			{
				Description: "Validate against a schema, machine-readable verdict",
				Command:     "toon validate --schema users.yaml --json users.toon",
			},
			{
				Description: "Require every field to be present",
				Command:     "toon validate --missing error users.toon",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
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

			verdict := check(cli.InputName(path), string(data), options)

			if done, err := params.EmitJSON(verdict); done {
				if err != nil {
					return err
				}
				if !verdict.Valid {
					return &cli.ExitError{Code: 1}
				}
				return nil
			}

			if verdict.Valid {
				fmt.Printf("%s: valid, %d record(s)\n", verdict.Input, verdict.Records)
				return nil
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", verdict.Input, verdict.Error)
			return &cli.ExitError{Code: 1}
		},
	}
}

// check decodes text and maps the outcome, including any structured
// error context, into a result.
func check(input, text string, options toon.DecodeOptions) result {
	records, err := toon.DecodeWithOptions(text, options)
	if err == nil {
		return result{Input: input, Valid: true, Records: len(records)}
	}

	verdict := result{Input: input, Error: err.Error()}

	var parseErr *toon.ParseError
	var missingErr *toon.MissingFieldError
	var coercionErr *toon.CoercionError
	switch {
	case errors.As(err, &parseErr):
		verdict.Line = parseErr.Line
	case errors.As(err, &missingErr):
		verdict.Line = missingErr.Line
		verdict.Field = missingErr.Field
	case errors.As(err, &coercionErr):
		verdict.Line = coercionErr.Line
		verdict.Field = coercionErr.Field
	}
	return verdict
}
