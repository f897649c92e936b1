// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/toon"
)

// DecodeOptionFlags is the flag group for decoder behavior, shared by
// the decode and validate commands. It implements [FlagBinder], so a
// params struct picks up the whole group by declaring a field of this
// type.
type DecodeOptionFlags struct {
	NoCoerce   bool
	Missing    string
	Dates      string
	DateLayout string
	SchemaPath string
}

// AddFlags binds the decoder flags to flagSet.
func (f *DecodeOptionFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.BoolVar(&f.NoCoerce, "no-coerce", false, "disable type coercion, every value stays a string")
	flagSet.StringVar(&f.Missing, "missing", "null", "missing-field policy: null, omit, or error")
	flagSet.StringVar(&f.Dates, "dates", "auto", "date parsing: auto, iso, or unix")
	flagSet.StringVar(&f.DateLayout, "date-layout", "", "parse dates with a Go time layout (overrides --dates)")
	flagSet.StringVarP(&f.SchemaPath, "schema", "s", "", "schema file with declared field types (.yaml, .yml, .json, .jsonc)")
}

// Options resolves the parsed flag values into a [toon.DecodeOptions],
// loading the schema file when one was named.
func (f *DecodeOptionFlags) Options() (toon.DecodeOptions, error) {
	var options toon.DecodeOptions
	options.DisableCoercion = f.NoCoerce

	policy, err := toon.ParseMissingFieldPolicy(f.Missing)
	if err != nil {
		return options, err
	}
	options.MissingFields = policy

	if f.DateLayout != "" {
		layout := f.DateLayout
		options.DateFormat = toon.DateCustom
		options.DateParser = func(s string) (time.Time, error) {
			return time.Parse(layout, s)
		}
	} else {
		format, err := toon.ParseDateFormat(f.Dates)
		if err != nil {
			return options, err
		}
		options.DateFormat = format
	}

	if f.SchemaPath != "" {
		schema, err := schemafile.Load(f.SchemaPath)
		if err != nil {
			return options, err
		}
		options.Schema = schema
	}

	return options, nil
}
