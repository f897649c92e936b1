// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Encode serializes records into a wire document, inferring the schema
// from the first record. Field order is lexicographic by key name;
// pass an explicit schema to EncodeWithSchema to control it.
func Encode(records []Record) (string, error) {
	return EncodeWithSchema(records, nil)
}

// EncodeWithSchema serializes records against an explicit schema. A nil
// schema is inferred from the first record. Every record's key set must
// equal the schema's field names, recursively for nested objects; a
// mismatch fails the whole call rather than dropping or reordering
// values, because the format is positional and a silently skipped
// column would corrupt every following value on the line.
//
// The output carries no trailing newline. EncodeWithSchema is a pure
// function safe for concurrent use.
func EncodeWithSchema(records []Record, schema *Schema) (string, error) {
	if schema == nil {
		inferred, err := InferSchema(records)
		if err != nil {
			return "", err
		}
		schema = inferred
	} else if err := schema.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(16 + 32*len(records))
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(len(records)))
	b.WriteString("]{")
	writeFieldDefs(&b, schema.Fields)
	b.WriteString("}:")

	for i, record := range records {
		b.WriteByte('\n')
		if err := encodeRecord(&b, record, schema.Fields); err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
	}
	return b.String(), nil
}

func encodeRecord(b *strings.Builder, record map[string]any, fields []Field) error {
	if err := checkKeys(record, fields, ""); err != nil {
		return err
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := encodeValue(b, record[f.Name], f, f.Name); err != nil {
			return err
		}
	}
	return nil
}

// checkKeys verifies that a record's key set equals the schema's field
// names at one nesting level.
func checkKeys(record map[string]any, fields []Field, path string) error {
	for _, f := range fields {
		if _, ok := record[f.Name]; !ok {
			return &SchemaError{Field: joinPath(path, f.Name), Detail: "absent from record"}
		}
	}
	if len(record) != len(fields) {
		declared := make(map[string]bool, len(fields))
		for _, f := range fields {
			declared[f.Name] = true
		}
		for name := range record {
			if !declared[name] {
				return &SchemaError{Field: joinPath(path, name), Detail: "not declared in the schema"}
			}
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// encodeValue renders one value as a wire token. path is the dotted
// field path used in error context.
func encodeValue(b *strings.Builder, value any, field Field, path string) error {
	if err := checkValueKind(value, field, path); err != nil {
		return err
	}
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
		return nil
	case string:
		// The format is line-oriented and line splitting happens
		// before quote-aware tokenizing, so a line break cannot be
		// carried even inside quotes.
		if strings.ContainsAny(v, "\n\r") {
			return &SchemaError{Field: path, Detail: "line break in string value has no wire representation"}
		}
		if needsQuoting(v) {
			writeQuoted(b, v)
		} else {
			b.WriteString(v)
		}
		return nil
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil
	case int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		return nil
	case int8:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		return nil
	case int16:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		return nil
	case int32:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		return nil
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
		return nil
	case uint:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		return nil
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		return nil
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		return nil
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		return nil
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
		return nil
	case float32:
		return writeFloat(b, float64(v), path)
	case float64:
		return writeFloat(b, v, path)
	case time.Time:
		b.WriteString(formatTime(v))
		return nil
	case map[string]any:
		if field.Properties == nil {
			return &SchemaError{Field: path, Detail: "object value for a field with no object schema"}
		}
		if err := checkKeys(v, field.Properties, path); err != nil {
			return err
		}
		b.WriteByte('{')
		for i, p := range field.Properties {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeValue(b, v[p.Name], p, path+"."+p.Name); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil
	case []any:
		elemField := Field{Name: field.Name}
		if field.Items != nil {
			elemField.Type = TypeObject
			elemField.Properties = field.Items
		}
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeValue(b, e, elemField, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	default:
		return &SchemaError{Field: path, Detail: fmt.Sprintf("unsupported value type %T", value)}
	}
}

// checkValueKind rejects a value whose shape contradicts the field's
// declared composite structure. That structure is rendered into the
// header, so a wrong-shaped value would produce a document its own
// header makes undecodable.
func checkValueKind(value any, field Field, path string) error {
	switch value.(type) {
	case nil, map[string]any:
		return nil
	case []any:
		if field.Type != "" && field.Type != TypeArray {
			return &SchemaError{Field: path, Detail: fmt.Sprintf("array value for a field declared %s", field.Type)}
		}
	default:
		if field.Type == TypeObject || field.Type == TypeArray {
			return &SchemaError{Field: path, Detail: fmt.Sprintf("%T value for a field declared %s", value, field.Type)}
		}
	}
	return nil
}

// writeFloat renders a float without exponent notation so the token
// re-enters the decoder through the numeric inference pattern. Integral
// floats render without a decimal point and decode as int64.
func writeFloat(b *strings.Builder, v float64, path string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &SchemaError{Field: path, Detail: fmt.Sprintf("non-finite number %v has no wire representation", v)}
	}
	b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	return nil
}

// formatTime renders a timestamp in UTC: midnight-exact values as a
// bare calendar date, everything else as RFC 3339.
func formatTime(t time.Time) string {
	u := t.UTC()
	h, m, s := u.Clock()
	if h == 0 && m == 0 && s == 0 && u.Nanosecond() == 0 {
		return u.Format("2006-01-02")
	}
	return u.Format(time.RFC3339Nano)
}

// needsQuoting reports whether a string value must be wrapped in quotes
// to survive the round trip: structural characters, surrounding
// whitespace, emptiness, or lexical confusability with a non-string
// token (boolean and null literals, numbers, dates).
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, ",\"{}[]") {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	return declaredNumberPattern.MatchString(s) || datePrefixPattern.MatchString(s)
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
}
