// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/toon/lib/toon"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "orders.yaml", `
version: "1"
description: order export
created_at: 2026-08-23T10:00:00Z
fields:
  - name: id
    type: number
  - name: name
  - name: address
    type: object
    properties:
      - name: city
        type: string
      - name: zip
  - name: items
    type: array
    items:
      - name: sku
        type: string
      - name: qty
        type: number
`)
	schema, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if schema.Version != "1" || schema.Description != "order export" {
		t.Errorf("metadata = %q, %q", schema.Version, schema.Description)
	}
	if want := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC); !schema.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", schema.CreatedAt, want)
	}
	wantFields := []toon.Field{
		{Name: "id", Type: toon.TypeNumber},
		{Name: "name"},
		{Name: "address", Type: toon.TypeObject, Properties: []toon.Field{
			{Name: "city", Type: toon.TypeString},
			{Name: "zip"},
		}},
		{Name: "items", Type: toon.TypeArray, Items: []toon.Field{
			{Name: "sku", Type: toon.TypeString},
			{Name: "qty", Type: toon.TypeNumber},
		}},
	}
	if !reflect.DeepEqual(schema.Fields, wantFields) {
		t.Errorf("Fields = %#v, want %#v", schema.Fields, wantFields)
	}
}

func TestLoadJSONC(t *testing.T) {
	path := writeFile(t, "orders.jsonc", `{
	// order export schema
	"version": "2",
	"fields": [
		{"name": "id", "type": "number"},
		{"name": "note"}, // untyped on purpose
	],
}`)
	schema, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if schema.Version != "2" {
		t.Errorf("Version = %q, want 2", schema.Version)
	}
	if !reflect.DeepEqual(schema.FieldNames(), []string{"id", "note"}) {
		t.Errorf("FieldNames() = %v", schema.FieldNames())
	}
	if schema.Fields[0].Type != toon.TypeNumber || schema.Fields[1].Type != "" {
		t.Errorf("types = %q, %q", schema.Fields[0].Type, schema.Fields[1].Type)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "orders.txt", "fields: []")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported schema file extension") {
		t.Errorf("Load = %v, want unsupported extension error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Load = %v, want error naming %s", err, path)
	}
}

func TestLoadRejectsUnknownType(t *testing.T) {
	path := writeFile(t, "bad.yaml", `
fields:
  - name: id
    type: float
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded, want unknown type error")
	}
	if !strings.Contains(err.Error(), "unknown field type") || !strings.Contains(err.Error(), "float") {
		t.Errorf("Load = %v", err)
	}
}

func TestLoadReportsAllViolations(t *testing.T) {
	path := writeFile(t, "bad.yaml", `
fields:
  - name: id
  - name: id
  - name: meta
    type: object
    items:
      - name: x
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded, want validation errors")
	}
	for _, want := range []string{"duplicate field name", "cannot declare items"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load error %q missing %q", err, want)
		}
	}
}

func TestCompositeWithoutNestedList(t *testing.T) {
	path := writeFile(t, "meta.yaml", `
fields:
  - name: meta
    type: object
  - name: rows
    type: array
`)
	schema, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if schema.Fields[0].Properties == nil || len(schema.Fields[0].Properties) != 0 {
		t.Errorf("meta.Properties = %#v, want empty non-nil", schema.Fields[0].Properties)
	}
	if schema.Fields[1].Items == nil || len(schema.Fields[1].Items) != 0 {
		t.Errorf("rows.Items = %#v, want empty non-nil", schema.Fields[1].Items)
	}
}

func roundTripSchema() *toon.Schema {
	return &toon.Schema{
		Version:     "3",
		Description: "round trip",
		CreatedAt:   time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Fields: []toon.Field{
			{Name: "id", Type: toon.TypeNumber},
			{Name: "tags"},
			{Name: "user", Type: toon.TypeObject, Properties: []toon.Field{
				{Name: "name", Type: toon.TypeString},
			}},
			{Name: "items", Type: toon.TypeArray, Items: []toon.Field{
				{Name: "sku"},
			}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"schema.yaml", "schema.json"} {
		t.Run(filepath.Ext(name), func(t *testing.T) {
			src := roundTripSchema()
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded.Version != src.Version || loaded.Description != src.Description {
				t.Errorf("metadata = %q, %q", loaded.Version, loaded.Description)
			}
			if !loaded.CreatedAt.Equal(src.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, src.CreatedAt)
			}
			if !reflect.DeepEqual(loaded.Fields, src.Fields) {
				t.Errorf("Fields = %#v, want %#v", loaded.Fields, src.Fields)
			}
		})
	}
}

func TestMarshalRejectsInvalidSchema(t *testing.T) {
	bad := &toon.Schema{Fields: []toon.Field{{Name: "a,b"}}}
	if _, err := MarshalYAML(bad); err == nil {
		t.Error("MarshalYAML accepted an invalid schema")
	}
	if _, err := MarshalJSON(bad); err == nil {
		t.Error("MarshalJSON accepted an invalid schema")
	}
}

func TestSaveUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	err := Save(path, roundTripSchema())
	if err == nil || !strings.Contains(err.Error(), "unsupported schema file extension") {
		t.Errorf("Save = %v, want unsupported extension error", err)
	}
}

func TestMarshalJSONShape(t *testing.T) {
	data, err := MarshalJSON(roundTripSchema())
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	text := string(data)
	for _, want := range []string{`"version": "3"`, `"name": "id"`, `"type": "number"`} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("output has no trailing newline")
	}
	// Untyped fields and empty metadata stay out of the document.
	if strings.Contains(text, `"type": ""`) || strings.Contains(text, "created_at\": null") {
		t.Errorf("output carries empty values:\n%s", text)
	}
}
