// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure classes of the codec plus schema
// violations. Callers branch with errors.Is; the concrete error types
// below carry structured context and unwrap to these sentinels.
var (
	// ErrInvalidInput reports input rejected before parsing begins:
	// an empty document, an empty record sequence handed to the
	// encoder, or an unusable option combination.
	ErrInvalidInput = errors.New("toon: invalid input")

	// ErrParse reports a structural failure in the wire text: a
	// malformed header, unbalanced brackets, an unterminated quote,
	// or a count or field-count mismatch.
	ErrParse = errors.New("toon: parse error")

	// ErrMissingField reports an absent value under the error-on-missing
	// decode policy.
	ErrMissingField = errors.New("toon: missing field")

	// ErrCoerce reports a value that cannot be converted to its
	// declared field type.
	ErrCoerce = errors.New("toon: type coercion failed")

	// ErrSchema reports an invalid schema or a record that does not
	// conform to one.
	ErrSchema = errors.New("toon: schema violation")
)

// ParseError describes a structural failure at a specific line. Lines
// are numbered from 1 over the trimmed document, so the header is
// always line 1.
type ParseError struct {
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toon: parse error at line %d: %s", e.Line, e.Detail)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// MissingFieldError reports an empty or null value for a field while
// decoding under MissingError policy.
type MissingFieldError struct {
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("toon: missing field %q at line %d", e.Field, e.Line)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// CoercionError reports a value that does not conform to its declared
// field type. Value holds the raw token as it appeared on the wire.
type CoercionError struct {
	Field  string
	Value  string
	Target FieldType
	Line   int
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("toon: type coercion failed for field %q at line %d: %q is not a valid %s",
		e.Field, e.Line, e.Value, e.Target)
}

func (e *CoercionError) Unwrap() error { return ErrCoerce }

// SchemaError reports an invalid schema definition or a record whose
// shape does not match the schema it is encoded against. Field is empty
// when the violation is not tied to a single field.
type SchemaError struct {
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("toon: schema violation: %s", e.Detail)
	}
	return fmt.Sprintf("toon: schema violation: field %q: %s", e.Field, e.Detail)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
