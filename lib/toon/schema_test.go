// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDecodeSchemaFlat(t *testing.T) {
	schema, err := DecodeSchema("[0]{id,name,age}:")
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}
	want := []string{"id", "name", "age"}
	if got := schema.FieldNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldNames() = %v, want %v", got, want)
	}
	for _, f := range schema.Fields {
		if f.Type != "" {
			t.Errorf("field %q has type %q, want undeclared", f.Name, f.Type)
		}
	}
}

func TestDecodeSchemaComposites(t *testing.T) {
	schema, err := DecodeSchema("[0]{user{name,role},items[{sku,qty}],note}:")
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}
	if len(schema.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(schema.Fields))
	}

	user := schema.Fields[0]
	if user.Type != TypeObject {
		t.Errorf("user.Type = %q, want object", user.Type)
	}
	if got := fieldNames(user.Properties); !reflect.DeepEqual(got, []string{"name", "role"}) {
		t.Errorf("user properties = %v", got)
	}

	items := schema.Fields[1]
	if items.Type != TypeArray {
		t.Errorf("items.Type = %q, want array", items.Type)
	}
	if got := fieldNames(items.Items); !reflect.DeepEqual(got, []string{"sku", "qty"}) {
		t.Errorf("items element fields = %v", got)
	}

	if note := schema.Fields[2]; note.Type != "" || note.Properties != nil || note.Items != nil {
		t.Errorf("note should be a bare scalar field, got %+v", note)
	}
}

func TestDecodeSchemaDeepNesting(t *testing.T) {
	schema, err := DecodeSchema("[0]{a{b{c}},d[{e{f,g}}]}:")
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}
	b := schema.Fields[0].Properties[0]
	if b.Type != TypeObject || len(b.Properties) != 1 || b.Properties[0].Name != "c" {
		t.Errorf("a.b parsed wrong: %+v", b)
	}
	e := schema.Fields[1].Items[0]
	if e.Type != TypeObject || !reflect.DeepEqual(fieldNames(e.Properties), []string{"f", "g"}) {
		t.Errorf("d[].e parsed wrong: %+v", e)
	}
}

func TestDecodeSchemaEmptyComposites(t *testing.T) {
	schema, err := DecodeSchema("[0]{meta{},list[{}]}:")
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}
	meta := schema.Fields[0]
	if meta.Type != TypeObject || meta.Properties == nil || len(meta.Properties) != 0 {
		t.Errorf("meta{} should parse to an object with zero properties, got %+v", meta)
	}
	list := schema.Fields[1]
	if list.Type != TypeArray || list.Items == nil || len(list.Items) != 0 {
		t.Errorf("list[{}] should parse to an array with a zero-field element schema, got %+v", list)
	}
}

func TestDecodeSchemaMalformed(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"duplicate field", "[0]{id,id}:"},
		{"duplicate nested field", "[0]{u{a,a}}:"},
		{"unclosed bracket", "[0]{a[}:"},
		{"array without element braces", "[0]{a[]}:"},
		{"text after object def", "[0]{a{b}x}:"},
		{"missing field name", "[0]{{a}}:"},
		{"empty definition", "[0]{a,,b}:"},
		{"stray quote", `[0]{a"b}:`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSchema(tt.header)
			if err == nil {
				t.Fatalf("DecodeSchema(%q) succeeded, want parse error", tt.header)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not match ErrParse", err)
			}
		})
	}
}

func TestInferSchemaSortsFields(t *testing.T) {
	schema, err := InferSchema([]Record{{"b": int64(1), "a": int64(2), "c": int64(3)}})
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	if got := schema.FieldNames(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("FieldNames() = %v, want lexicographic order", got)
	}
	for _, f := range schema.Fields {
		if f.Type != TypeNumber {
			t.Errorf("field %q inferred as %q, want number", f.Name, f.Type)
		}
	}
}

func TestInferSchemaScalarTypes(t *testing.T) {
	schema, err := InferSchema([]Record{{
		"s": "x",
		"n": 3.5,
		"i": int64(2),
		"b": true,
		"d": time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		"z": nil,
	}})
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	want := map[string]FieldType{
		"s": TypeString, "n": TypeNumber, "i": TypeNumber,
		"b": TypeBoolean, "d": TypeDate, "z": "",
	}
	for _, f := range schema.Fields {
		if f.Type != want[f.Name] {
			t.Errorf("field %q inferred as %q, want %q", f.Name, f.Type, want[f.Name])
		}
	}
}

func TestInferSchemaComposites(t *testing.T) {
	schema, err := InferSchema([]Record{{
		"address": map[string]any{"city": "Berlin", "zip": "10115"},
		"orders":  []any{map[string]any{"sku": "x1", "qty": int64(2)}},
		"tags":    []any{"a", "b"},
		"empty":   []any{},
	}})
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	byName := make(map[string]Field)
	for _, f := range schema.Fields {
		byName[f.Name] = f
	}

	if f := byName["address"]; f.Type != TypeObject || !reflect.DeepEqual(fieldNames(f.Properties), []string{"city", "zip"}) {
		t.Errorf("address inferred wrong: %+v", f)
	}
	if f := byName["orders"]; f.Type != TypeArray || !reflect.DeepEqual(fieldNames(f.Items), []string{"qty", "sku"}) {
		t.Errorf("orders inferred wrong: %+v", f)
	}
	// Scalar and empty sequences stay bare: their structure lives in
	// the value tokens.
	if f := byName["tags"]; f.Type != "" || f.Items != nil {
		t.Errorf("tags inferred wrong: %+v", f)
	}
	if f := byName["empty"]; f.Type != "" || f.Items != nil {
		t.Errorf("empty inferred wrong: %+v", f)
	}
}

func TestInferSchemaErrors(t *testing.T) {
	if _, err := InferSchema(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("InferSchema(nil) = %v, want ErrInvalidInput", err)
	}
	if _, err := InferSchema([]Record{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("InferSchema(empty) = %v, want ErrInvalidInput", err)
	}
	if _, err := InferSchema([]Record{{"x": struct{}{}}}); !errors.Is(err, ErrSchema) {
		t.Errorf("unsupported value type: got %v, want ErrSchema", err)
	}
	if _, err := InferSchema([]Record{{"a,b": int64(1)}}); !errors.Is(err, ErrSchema) {
		t.Errorf("structural char in field name: got %v, want ErrSchema", err)
	}
}

func TestSchemaValidate(t *testing.T) {
	valid := &Schema{Fields: []Field{
		{Name: "id", Type: TypeNumber},
		{Name: "name"},
		{Name: "address", Type: TypeObject, Properties: []Field{{Name: "city", Type: TypeString}}},
		{Name: "orders", Type: TypeArray, Items: []Field{{Name: "sku"}}},
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate on valid schema: %v", err)
	}

	tests := []struct {
		name   string
		schema *Schema
		detail string
	}{
		{
			"object without properties",
			&Schema{Fields: []Field{{Name: "a", Type: TypeObject}}},
			"requires properties",
		},
		{
			"array without items",
			&Schema{Fields: []Field{{Name: "a", Type: TypeArray}}},
			"requires items",
		},
		{
			"scalar with properties",
			&Schema{Fields: []Field{{Name: "a", Type: TypeNumber, Properties: []Field{}}}},
			"cannot declare properties",
		},
		{
			"unknown type",
			&Schema{Fields: []Field{{Name: "a", Type: "float"}}},
			"unknown field type",
		},
		{
			"duplicate names",
			&Schema{Fields: []Field{{Name: "a"}, {Name: "a"}}},
			"duplicate",
		},
		{
			"nested duplicate",
			&Schema{Fields: []Field{{Name: "u", Type: TypeObject, Properties: []Field{{Name: "x"}, {Name: "x"}}}}},
			"duplicate",
		},
		{
			"bad nested name",
			&Schema{Fields: []Field{{Name: "u", Type: TypeObject, Properties: []Field{{Name: "a{b"}}}}},
			"structural character",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want schema error")
			}
			if !errors.Is(err, ErrSchema) {
				t.Errorf("error %v does not match ErrSchema", err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q does not mention %q", err, tt.detail)
			}
		})
	}
}

func TestSchemaValidateJoinsAllViolations(t *testing.T) {
	schema := &Schema{Fields: []Field{
		{Name: "a", Type: TypeObject},
		{Name: "b", Type: "float"},
	}}
	err := schema.Validate()
	if err == nil {
		t.Fatal("Validate succeeded, want two violations")
	}
	for _, want := range []string{"requires properties", "unknown field type"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error %q missing %q", err, want)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	for _, name := range []string{"string", "number", "boolean", "date", "object", "array"} {
		got, err := ParseFieldType(name)
		if err != nil {
			t.Errorf("ParseFieldType(%q): %v", name, err)
		}
		if string(got) != name {
			t.Errorf("ParseFieldType(%q) = %q", name, got)
		}
	}
	if _, err := ParseFieldType("float"); !errors.Is(err, ErrSchema) {
		t.Errorf("ParseFieldType(float) = %v, want ErrSchema", err)
	}
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
