// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/toon/lib/toon"
)

// ReadInput returns the contents of the file at path. A path of "-" or
// "" reads all of stdin, so commands compose in pipelines.
func ReadInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// InputName returns the display name used in error messages and log
// attributes for an input path: the path itself, or "stdin" for "-"
// and "".
func InputName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// ReadRecords loads a record sequence from the JSON document at path
// ("-" or "" for stdin). The document must be an array of objects.
// Comments and trailing commas are allowed, so hand-maintained JSONC
// fixtures work without a cleanup step.
func ReadRecords(path string) ([]toon.Record, error) {
	data, err := ReadInput(path)
	if err != nil {
		return nil, err
	}
	return ParseRecords(InputName(path), data)
}

// ParseRecords parses a record sequence from already-read JSON or
// JSONC bytes. The name appears in error messages.
func ParseRecords(name string, data []byte) ([]toon.Record, error) {
	var records []toon.Record
	if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("parsing %s: expected a JSON array of objects: %w", name, err)
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return records, nil
}

// WriteOutput writes data to the file at path, or to stdout when path
// is "-" or "".
func WriteOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
