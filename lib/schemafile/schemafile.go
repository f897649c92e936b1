// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemafile reads and writes field schemas as standalone
// files, so a schema authored once can drive encoding, decoding, and
// validation across runs and tools.
//
// Two formats are supported, selected by file extension:
//
//   - .yaml / .yml: YAML
//   - .json / .jsonc: JSON, extended with // line comments,
//     /* block comments */, and trailing commas
//
// Both map onto the same document shape:
//
//	version: "1"
//	description: order export
//	fields:
//	  - name: id
//	    type: number
//	  - name: items
//	    type: array
//	    items:
//	      - name: sku
//	        type: string
//
// Every load path validates the resulting schema before returning it,
// so a *toon.Schema obtained here is always safe to hand to the codec.
package schemafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/toon/lib/toon"
)

// document is the on-disk shape of a schema file.
type document struct {
	Version     string     `yaml:"version,omitempty" json:"version,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	CreatedAt   *time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	Fields      []fieldDef `yaml:"fields" json:"fields"`
}

type fieldDef struct {
	Name       string     `yaml:"name" json:"name"`
	Type       string     `yaml:"type,omitempty" json:"type,omitempty"`
	Properties []fieldDef `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items      []fieldDef `yaml:"items,omitempty" json:"items,omitempty"`
}

// Load reads a schema file from disk, dispatching on the file
// extension.
func Load(path string) (*toon.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var schema *toon.Schema
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		schema, err = ParseYAML(data)
	case ".json", ".jsonc":
		schema, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("%s: unsupported schema file extension %q (want .yaml, .yml, .json, or .jsonc)", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}

// ParseYAML parses YAML schema bytes and validates the result.
func ParseYAML(data []byte) (*toon.Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return fromDocument(&doc)
}

// ParseJSON parses JSON schema bytes and validates the result. The
// input may use JSONC extensions: comments and trailing commas.
func ParseJSON(data []byte) (*toon.Schema, error) {
	stripped := jsonc.ToJSON(data)

	var doc document
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return fromDocument(&doc)
}

// Save writes a schema to disk, dispatching on the file extension the
// same way Load does. JSONC output is plain JSON: comments cannot be
// synthesized.
func Save(path string, schema *toon.Schema) error {
	var data []byte
	var err error
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		data, err = MarshalYAML(schema)
	case ".json", ".jsonc":
		data, err = MarshalJSON(schema)
	default:
		return fmt.Errorf("%s: unsupported schema file extension %q (want .yaml, .yml, .json, or .jsonc)", path, ext)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// MarshalYAML renders a schema as YAML document bytes.
func MarshalYAML(schema *toon.Schema) ([]byte, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return yaml.Marshal(toDocument(schema))
}

// MarshalJSON renders a schema as indented JSON document bytes with a
// trailing newline.
func MarshalJSON(schema *toon.Schema) ([]byte, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(toDocument(schema), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func fromDocument(doc *document) (*toon.Schema, error) {
	fields, err := fromFieldDefs(doc.Fields)
	if err != nil {
		return nil, err
	}
	schema := &toon.Schema{
		Version:     doc.Version,
		Description: doc.Description,
		Fields:      fields,
	}
	if doc.CreatedAt != nil {
		schema.CreatedAt = *doc.CreatedAt
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

func fromFieldDefs(defs []fieldDef) ([]toon.Field, error) {
	if defs == nil {
		return nil, nil
	}
	fields := make([]toon.Field, 0, len(defs))
	for _, d := range defs {
		f := toon.Field{Name: d.Name}
		if d.Type != "" {
			t, err := toon.ParseFieldType(d.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", d.Name, err)
			}
			f.Type = t
		}
		var err error
		if f.Properties, err = fromFieldDefs(d.Properties); err != nil {
			return nil, err
		}
		if f.Items, err = fromFieldDefs(d.Items); err != nil {
			return nil, err
		}
		// Serialization drops empty lists, so an object or array field
		// with no nested list in the file means an empty one.
		if f.Type == toon.TypeObject && f.Properties == nil {
			f.Properties = []toon.Field{}
		}
		if f.Type == toon.TypeArray && f.Items == nil {
			f.Items = []toon.Field{}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func toDocument(schema *toon.Schema) *document {
	doc := &document{
		Version:     schema.Version,
		Description: schema.Description,
		Fields:      toFieldDefs(schema.Fields),
	}
	if !schema.CreatedAt.IsZero() {
		created := schema.CreatedAt
		doc.CreatedAt = &created
	}
	return doc
}

func toFieldDefs(fields []toon.Field) []fieldDef {
	if fields == nil {
		return nil
	}
	defs := make([]fieldDef, 0, len(fields))
	for _, f := range fields {
		defs = append(defs, fieldDef{
			Name:       f.Name,
			Type:       string(f.Type),
			Properties: toFieldDefs(f.Properties),
			Items:      toFieldDefs(f.Items),
		})
	}
	return defs
}
