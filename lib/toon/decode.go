// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// headerPattern is the fixed top-level grammar: a bracketed record
// count, a braced field-definition block, and a terminating colon.
var headerPattern = regexp.MustCompile(`^\[([0-9]+)\]\{(.*)\}:$`)

// Decode parses a wire document into records using default options:
// coercion on, missing values stored as nil, dates auto-detected.
func Decode(text string) ([]Record, error) {
	return DecodeWithOptions(text, DecodeOptions{})
}

// DecodeWithOptions parses a wire document into records. The header is
// validated first: its declared count must equal the number of
// non-blank body lines before any value is decoded, so truncated input
// fails fast instead of yielding a partial result. Each body line then
// splits into positional tokens that decode against the header-derived
// (and optionally overlay-typed) schema.
//
// DecodeWithOptions is a pure function safe for concurrent use.
func DecodeWithOptions(text string, options DecodeOptions) ([]Record, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	doc := strings.TrimSpace(text)
	if doc == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}
	headerLine, rest, _ := strings.Cut(doc, "\n")
	count, fields, err := parseHeader(strings.TrimSpace(headerLine))
	if err != nil {
		return nil, err
	}
	if options.Schema != nil {
		if err := options.Schema.Validate(); err != nil {
			return nil, err
		}
		fields, err = applyDeclaredTypes(fields, options.Schema.Fields)
		if err != nil {
			return nil, err
		}
	}

	lines := bodyLines(rest)
	if len(lines) != count {
		return nil, &ParseError{Line: 1,
			Detail: fmt.Sprintf("header declares %d record(s), document has %d body line(s)", count, len(lines))}
	}

	records := make([]Record, 0, count)
	for _, line := range lines {
		record, err := decodeLine(line.text, line.number, fields, options)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// DecodeSchema parses only the header of a wire document and returns
// the schema it declares. Composite structure is preserved; scalar
// columns come back undeclared because the wire grammar carries no
// primitive type annotations.
func DecodeSchema(text string) (*Schema, error) {
	doc := strings.TrimSpace(text)
	if doc == "" {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}
	headerLine, _, _ := strings.Cut(doc, "\n")
	_, fields, err := parseHeader(strings.TrimSpace(headerLine))
	if err != nil {
		return nil, err
	}
	return &Schema{Fields: fields}, nil
}

func parseHeader(line string) (int, []Field, error) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, nil, &ParseError{Line: 1, Detail: fmt.Sprintf("header does not match [count]{fields}: syntax: %s", clip(line))}
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, nil, &ParseError{Line: 1, Detail: fmt.Sprintf("record count %s out of range", clip(m[1]))}
	}
	fields, err := parseFieldDefs(m[2], 1)
	if err != nil {
		return 0, nil, err
	}
	return count, fields, nil
}

type bodyLine struct {
	text   string
	number int
}

// bodyLines trims and filters the lines after the header, keeping each
// surviving line's 1-based document position for error context.
func bodyLines(rest string) []bodyLine {
	if rest == "" {
		return nil
	}
	raw := strings.Split(rest, "\n")
	lines := make([]bodyLine, 0, len(raw))
	for i, l := range raw {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		lines = append(lines, bodyLine{text: trimmed, number: i + 2})
	}
	return lines
}

func decodeLine(line string, number int, fields []Field, options DecodeOptions) (Record, error) {
	tokens, err := splitTopLevel(line, number)
	if err != nil {
		return nil, err
	}
	if len(tokens) != len(fields) {
		return nil, &ParseError{Line: number,
			Detail: fmt.Sprintf("schema has %d field(s), line has %d value(s): %s", len(fields), len(tokens), clip(line))}
	}
	record := make(Record, len(fields))
	for i, f := range fields {
		value, present, err := decodeValue(strings.TrimSpace(tokens[i]), f, number, options)
		if err != nil {
			return nil, err
		}
		if present {
			record[f.Name] = value
		}
	}
	return record, nil
}

// decodeValue converts one raw token into a typed value. The second
// return is false when the missing-field policy omits the value from
// the decoded record.
func decodeValue(token string, field Field, line int, options DecodeOptions) (any, bool, error) {
	if token == "" || token == "null" {
		switch options.MissingFields {
		case MissingOmit:
			return nil, false, nil
		case MissingError:
			return nil, false, &MissingFieldError{Field: field.Name, Line: line}
		}
		return nil, true, nil
	}

	switch token[0] {
	case '"':
		// A quoted value is always a verbatim string, even under a
		// declared non-string type.
		s, err := unquote(token, line)
		if err != nil {
			return nil, false, err
		}
		return s, true, nil
	case '[':
		if field.Type != "" && field.Type != TypeArray {
			return nil, false, &CoercionError{Field: field.Name, Value: token, Target: field.Type, Line: line}
		}
		v, err := decodeArray(token, field, line, options)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	case '{':
		if field.Type != "" && field.Type != TypeObject {
			return nil, false, &CoercionError{Field: field.Name, Value: token, Target: field.Type, Line: line}
		}
		v, err := decodeObject(token, field, line, options)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}

	if options.DisableCoercion {
		return token, true, nil
	}
	if field.Type != "" {
		v, err := coerceDeclared(token, field, line, options)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	return inferValue(token, options), true, nil
}

// decodeArray parses a `[...]` token. Elements decode against the
// field's Items schema when one is declared; otherwise each element is
// decoded by inference. An empty or null element stays nil in the
// sequence under both MissingNull and MissingOmit, because dropping it
// would shift the positions of its neighbors; MissingError still
// applies.
func decodeArray(token string, field Field, line int, options DecodeOptions) ([]any, error) {
	if token[len(token)-1] != ']' {
		return nil, &ParseError{Line: line, Detail: fmt.Sprintf("malformed array value %s", clip(token))}
	}
	interior := token[1 : len(token)-1]
	if strings.TrimSpace(interior) == "" {
		return []any{}, nil
	}
	elements, err := splitTopLevel(interior, line)
	if err != nil {
		return nil, err
	}

	elemField := Field{Name: field.Name + "[]"}
	if field.Items != nil {
		elemField.Type = TypeObject
		elemField.Properties = field.Items
	}

	out := make([]any, 0, len(elements))
	for _, e := range elements {
		v, present, err := decodeValue(strings.TrimSpace(e), elemField, line, options)
		if err != nil {
			return nil, err
		}
		if !present {
			v = nil
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeObject parses a `{...}` token as a nested record against the
// field's Properties schema. Without one there is no positional
// contract to decode against, so only the empty object is accepted.
func decodeObject(token string, field Field, line int, options DecodeOptions) (map[string]any, error) {
	if token[len(token)-1] != '}' {
		return nil, &ParseError{Line: line, Detail: fmt.Sprintf("malformed object value %s", clip(token))}
	}
	interior := token[1 : len(token)-1]

	if field.Properties == nil {
		if strings.TrimSpace(interior) == "" {
			return map[string]any{}, nil
		}
		return nil, &ParseError{Line: line,
			Detail: fmt.Sprintf("object value %s for field %q has no object schema to decode against", clip(token), field.Name)}
	}

	var tokens []string
	if strings.TrimSpace(interior) != "" {
		var err error
		tokens, err = splitTopLevel(interior, line)
		if err != nil {
			return nil, err
		}
	}
	if len(tokens) != len(field.Properties) {
		return nil, &ParseError{Line: line,
			Detail: fmt.Sprintf("object value has %d value(s), schema declares %d: %s",
				len(tokens), len(field.Properties), clip(token))}
	}

	nested := make(map[string]any, len(field.Properties))
	for i, p := range field.Properties {
		qualified := p
		qualified.Name = field.Name + "." + p.Name
		v, present, err := decodeValue(strings.TrimSpace(tokens[i]), qualified, line, options)
		if err != nil {
			return nil, err
		}
		if present {
			nested[p.Name] = v
		}
	}
	return nested, nil
}
