// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"fmt"
	"time"
)

// MissingFieldPolicy controls what the decoder does with an empty or
// literal null value.
type MissingFieldPolicy int

const (
	// MissingNull stores the field with a nil value. Default.
	MissingNull MissingFieldPolicy = iota

	// MissingOmit leaves the field out of the decoded record entirely.
	MissingOmit

	// MissingError fails the decode with a MissingFieldError.
	MissingError
)

// String returns the policy name as accepted by ParseMissingFieldPolicy.
func (p MissingFieldPolicy) String() string {
	switch p {
	case MissingNull:
		return "null"
	case MissingOmit:
		return "omit"
	case MissingError:
		return "error"
	}
	return fmt.Sprintf("MissingFieldPolicy(%d)", int(p))
}

// ParseMissingFieldPolicy converts a policy name ("null", "omit",
// "error") to its MissingFieldPolicy value.
func ParseMissingFieldPolicy(s string) (MissingFieldPolicy, error) {
	switch s {
	case "null":
		return MissingNull, nil
	case "omit":
		return MissingOmit, nil
	case "error":
		return MissingError, nil
	}
	return 0, fmt.Errorf("%w: unknown missing-field policy %q (valid: null, omit, error)", ErrInvalidInput, s)
}

// DateFormat selects how date tokens are parsed.
type DateFormat int

const (
	// DateAuto tries ISO 8601 first, then unix epoch seconds. Default.
	DateAuto DateFormat = iota

	// DateISO accepts ISO 8601 only: date-only, date-time, or
	// date-time with zone offset.
	DateISO

	// DateUnix accepts integer seconds since the unix epoch.
	DateUnix

	// DateCustom delegates to the DateParser in DecodeOptions.
	DateCustom
)

// String returns the format name as accepted by ParseDateFormat.
func (f DateFormat) String() string {
	switch f {
	case DateAuto:
		return "auto"
	case DateISO:
		return "iso"
	case DateUnix:
		return "unix"
	case DateCustom:
		return "custom"
	}
	return fmt.Sprintf("DateFormat(%d)", int(f))
}

// ParseDateFormat converts a format name ("auto", "iso", "unix") to its
// DateFormat value. DateCustom is not nameable here: it requires a
// parser function and is only reachable by constructing DecodeOptions
// directly.
func ParseDateFormat(s string) (DateFormat, error) {
	switch s {
	case "auto":
		return DateAuto, nil
	case "iso":
		return DateISO, nil
	case "unix":
		return DateUnix, nil
	}
	return 0, fmt.Errorf("%w: unknown date format %q (valid: auto, iso, unix)", ErrInvalidInput, s)
}

// DateParserFunc parses a raw date token under DateCustom.
type DateParserFunc func(string) (time.Time, error)

// DecodeOptions adjusts decoder behavior. The zero value is the default
// configuration: coercion on, missing values stored as nil, dates
// auto-detected.
type DecodeOptions struct {
	// DisableCoercion returns every plain token as a string verbatim
	// instead of inferring or applying declared types.
	DisableCoercion bool

	// MissingFields selects the policy for empty and literal null
	// values.
	MissingFields MissingFieldPolicy

	// DateFormat selects the date parsing strategy.
	DateFormat DateFormat

	// DateParser handles date tokens under DateCustom. Required when
	// DateFormat is DateCustom, ignored otherwise.
	DateParser DateParserFunc

	// Schema overlays declared field types onto the wire header. Fields
	// are matched by name; the header keeps authority over column order
	// and count. Nil means every bare column is decoded by inference.
	Schema *Schema
}

func (o DecodeOptions) validate() error {
	switch o.MissingFields {
	case MissingNull, MissingOmit, MissingError:
	default:
		return fmt.Errorf("%w: missing-field policy out of range: %d", ErrInvalidInput, int(o.MissingFields))
	}
	switch o.DateFormat {
	case DateAuto, DateISO, DateUnix:
	case DateCustom:
		if o.DateParser == nil {
			return fmt.Errorf("%w: DateCustom requires a DateParser", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: date format out of range: %d", ErrInvalidInput, int(o.DateFormat))
	}
	return nil
}
