// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// numberPattern gates type inference: plain integers and decimals,
	// negatives included. Exponent notation deliberately does not
	// infer (it stays a string) but is accepted for declared number
	// fields via declaredNumberPattern.
	numberPattern         = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
	declaredNumberPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]+)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

	// datePrefixPattern gates date inference. A matching token must
	// still parse under the active date policy to become a date;
	// otherwise it falls back to string.
	datePrefixPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}`)
)

// inferValue decodes a plain token with the default inference order:
// boolean, number, date, string. Inference never fails; the fallback is
// always the raw token as a string.
func inferValue(token string, options DecodeOptions) any {
	switch token {
	case "true":
		return true
	case "false":
		return false
	}
	if numberPattern.MatchString(token) {
		if n, ok := parseNumber(token); ok {
			return n
		}
	}
	if datePrefixPattern.MatchString(token) {
		if t, err := parseDate(token, options); err == nil {
			return t
		}
	}
	return token
}

// coerceDeclared converts a plain token to the field's declared type,
// strictly: any token that does not conform is a CoercionError, never a
// silent string fallback.
func coerceDeclared(token string, field Field, line int, options DecodeOptions) (any, error) {
	switch field.Type {
	case TypeString:
		return token, nil
	case TypeBoolean:
		switch token {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	case TypeNumber:
		if declaredNumberPattern.MatchString(token) {
			if n, ok := parseNumber(token); ok {
				return n, nil
			}
		}
	case TypeDate:
		t, err := parseDate(token, options)
		if err == nil {
			return t, nil
		}
	}
	// Also reached by TypeObject and TypeArray: a plain token cannot
	// become a composite.
	return nil, &CoercionError{Field: field.Name, Value: token, Target: field.Type, Line: line}
}

// parseNumber converts a pattern-validated numeric token. Integers
// become int64, decimals and exponent forms float64. An integer beyond
// int64 range degrades to float64 rather than failing.
func parseNumber(token string) (any, bool) {
	if !strings.ContainsAny(token, ".eE") {
		if n, err := strconv.ParseInt(token, 10, 64); err == nil {
			return n, true
		}
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

// isoDateLayouts are tried in order by parseISODate. RFC3339Nano also
// accepts timestamps without fractional seconds, so it covers plain
// RFC3339 input.
var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate applies the configured date policy to a raw token.
func parseDate(token string, options DecodeOptions) (time.Time, error) {
	switch options.DateFormat {
	case DateISO:
		return parseISODate(token)
	case DateUnix:
		return parseUnixSeconds(token)
	case DateCustom:
		return options.DateParser(token)
	default:
		if t, err := parseISODate(token); err == nil {
			return t, nil
		}
		return parseUnixSeconds(token)
	}
}

func parseISODate(s string) (time.Time, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 date: %q", s)
}

func parseUnixSeconds(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("not unix epoch seconds: %q", s)
	}
	return time.Unix(n, 0).UTC(), nil
}
