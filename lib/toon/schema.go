// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record is one decoded or to-be-encoded row. Values are the canonical
// decoded types: string, int64, float64, bool, time.Time, nil,
// map[string]any for nested records, and []any for sequences. The
// encoder additionally accepts the other Go integer and float widths.
type Record = map[string]any

// FieldType names a field's declared type in a schema. The zero value
// means undeclared: the decoder infers a type per value and the header
// renders a bare column name.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// ParseFieldType validates a type name from a schema document.
func ParseFieldType(s string) (FieldType, error) {
	switch t := FieldType(s); t {
	case TypeString, TypeNumber, TypeBoolean, TypeDate, TypeObject, TypeArray:
		return t, nil
	}
	return "", &SchemaError{Detail: fmt.Sprintf("unknown field type %q (valid: string, number, boolean, date, object, array)", s)}
}

// Field describes one column of a schema. Composite fields carry a
// nested schema: Properties for object fields, Items for the element
// records of an array field. Properties is non-nil exactly when Type is
// TypeObject, Items non-nil exactly when Type is TypeArray; both may be
// empty but non-nil for `{}`-shaped values.
type Field struct {
	Name       string
	Type       FieldType
	Properties []Field
	Items      []Field
}

// Schema is an ordered field list plus optional document metadata. The
// field order is the column order on the wire. A Schema is immutable
// for the duration of an encode or decode call.
type Schema struct {
	Version     string
	Description string
	CreatedAt   time.Time
	Fields      []Field
}

// FieldNames returns the top-level field names in column order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks structural invariants: usable unique field names at
// every nesting level, known types, and composite consistency
// (properties exactly on object fields, items exactly on array fields).
// All violations are reported together via errors.Join.
func (s *Schema) Validate() error {
	if s == nil {
		return &SchemaError{Detail: "nil schema"}
	}
	var errs []error
	validateFields(s.Fields, "", &errs)
	return errors.Join(errs...)
}

func validateFields(fields []Field, path string, errs *[]error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		name := f.Name
		if path != "" {
			name = path + "." + f.Name
		}
		if err := validateFieldName(f.Name); err != nil {
			*errs = append(*errs, &SchemaError{Field: name, Detail: err.Error()})
		} else if seen[f.Name] {
			*errs = append(*errs, &SchemaError{Field: name, Detail: "duplicate field name"})
		}
		seen[f.Name] = true

		switch f.Type {
		case TypeObject:
			if f.Properties == nil {
				*errs = append(*errs, &SchemaError{Field: name, Detail: "object field requires properties"})
			}
			if f.Items != nil {
				*errs = append(*errs, &SchemaError{Field: name, Detail: "object field cannot declare items"})
			}
			validateFields(f.Properties, name, errs)
		case TypeArray:
			if f.Items == nil {
				*errs = append(*errs, &SchemaError{Field: name, Detail: "array field requires items"})
			}
			if f.Properties != nil {
				*errs = append(*errs, &SchemaError{Field: name, Detail: "array field cannot declare properties"})
			}
			validateFields(f.Items, name, errs)
		case TypeString, TypeNumber, TypeBoolean, TypeDate, "":
			if f.Properties != nil {
				*errs = append(*errs, &SchemaError{Field: name, Detail: "scalar field cannot declare properties"})
			}
			if f.Items != nil {
				*errs = append(*errs, &SchemaError{Field: name, Detail: "scalar field cannot declare items"})
			}
		default:
			*errs = append(*errs, &SchemaError{Field: name, Detail: fmt.Sprintf("unknown field type %q", f.Type)})
		}
	}
}

// validateFieldName rejects names that cannot survive the wire grammar:
// structural characters would corrupt tokenizing, surrounding
// whitespace would not survive the trim on decode.
func validateFieldName(name string) error {
	if name == "" {
		return errors.New("empty field name")
	}
	if strings.ContainsAny(name, "\"{}[],\n\r") {
		return fmt.Errorf("field name %q contains a structural character", name)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("field name %q has surrounding whitespace", name)
	}
	return nil
}

// InferSchema derives a schema from the first record of a sequence:
// field order is the lexicographic order of the record's keys (Go map
// iteration is unordered, so insertion order is not observable), and
// each field's type is the runtime type of its value, recursing into
// nested maps and into the first element of record slices. Later
// records do not refine the schema; they are validated against it at
// encode time.
func InferSchema(records []Record) (*Schema, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: cannot infer a schema from zero records", ErrInvalidInput)
	}
	fields, err := inferFields(records[0])
	if err != nil {
		return nil, err
	}
	return &Schema{Fields: fields}, nil
}

func inferFields(record map[string]any) ([]Field, error) {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	slices.Sort(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		f, err := inferField(name, record[name])
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func inferField(name string, value any) (Field, error) {
	if err := validateFieldName(name); err != nil {
		return Field{}, &SchemaError{Field: name, Detail: err.Error()}
	}
	switch v := value.(type) {
	case nil:
		return Field{Name: name}, nil
	case string:
		return Field{Name: name, Type: TypeString}, nil
	case bool:
		return Field{Name: name, Type: TypeBoolean}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Field{Name: name, Type: TypeNumber}, nil
	case time.Time:
		return Field{Name: name, Type: TypeDate}, nil
	case map[string]any:
		props, err := inferFields(v)
		if err != nil {
			return Field{}, err
		}
		return Field{Name: name, Type: TypeObject, Properties: props}, nil
	case []any:
		if len(v) > 0 {
			if elem, ok := v[0].(map[string]any); ok {
				items, err := inferFields(elem)
				if err != nil {
					return Field{}, err
				}
				return Field{Name: name, Type: TypeArray, Items: items}, nil
			}
		}
		// Scalar and empty sequences carry their structure in the
		// value tokens; the header column stays bare.
		return Field{Name: name}, nil
	default:
		return Field{}, &SchemaError{Field: name, Detail: fmt.Sprintf("unsupported value type %T", value)}
	}
}

// parseFieldDefs parses the interior of a `{...}` field-definition
// block into an ordered field list. Splitting happens at bracket depth
// zero so nested composite definitions stay intact; each definition is
// then classified by shape: `name[{inner}]` declares an array of
// records, `name{inner}` a nested object, and a bare name an
// inference-typed column.
func parseFieldDefs(s string, line int) ([]Field, error) {
	if strings.TrimSpace(s) == "" {
		return []Field{}, nil
	}
	defs, err := splitTopLevel(s, line)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		f, err := parseFieldDef(strings.TrimSpace(def), line)
		if err != nil {
			return nil, err
		}
		if seen[f.Name] {
			return nil, &ParseError{Line: line, Detail: fmt.Sprintf("duplicate field name %q", f.Name)}
		}
		seen[f.Name] = true
		fields = append(fields, f)
	}
	return fields, nil
}

func parseFieldDef(def string, line int) (Field, error) {
	braceIdx := strings.IndexByte(def, '{')
	brackIdx := strings.IndexByte(def, '[')

	switch {
	case brackIdx == -1 && braceIdx == -1:
		if err := validateFieldName(def); err != nil {
			return Field{}, &ParseError{Line: line, Detail: err.Error()}
		}
		return Field{Name: def}, nil

	case brackIdx != -1 && (braceIdx == -1 || brackIdx < braceIdx):
		// name[{inner}]
		name := def[:brackIdx]
		if err := validateFieldName(name); err != nil {
			return Field{}, &ParseError{Line: line, Detail: err.Error()}
		}
		if !strings.HasPrefix(def[brackIdx:], "[{") || !strings.HasSuffix(def, "}]") || len(def) < brackIdx+4 {
			return Field{}, &ParseError{Line: line, Detail: fmt.Sprintf("malformed array field definition %s", clip(def))}
		}
		items, err := parseFieldDefs(def[brackIdx+2:len(def)-2], line)
		if err != nil {
			return Field{}, err
		}
		return Field{Name: name, Type: TypeArray, Items: items}, nil

	default:
		// name{inner}
		name := def[:braceIdx]
		if err := validateFieldName(name); err != nil {
			return Field{}, &ParseError{Line: line, Detail: err.Error()}
		}
		if !strings.HasSuffix(def, "}") {
			return Field{}, &ParseError{Line: line, Detail: fmt.Sprintf("malformed object field definition %s", clip(def))}
		}
		props, err := parseFieldDefs(def[braceIdx+1:len(def)-1], line)
		if err != nil {
			return Field{}, err
		}
		return Field{Name: name, Type: TypeObject, Properties: props}, nil
	}
}

// writeFieldDefs renders an ordered field list in header notation, the
// inverse of parseFieldDefs. Declared scalar types are not part of the
// wire grammar; scalar and undeclared fields both render as bare names.
func writeFieldDefs(b *strings.Builder, fields []Field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
		switch f.Type {
		case TypeObject:
			b.WriteByte('{')
			writeFieldDefs(b, f.Properties)
			b.WriteByte('}')
		case TypeArray:
			b.WriteString("[{")
			writeFieldDefs(b, f.Items)
			b.WriteString("}]")
		}
	}
}

// applyDeclaredTypes overlays an explicit schema onto header-derived
// fields by name. Bare header columns adopt the declared type or the
// full declared composite structure; matching composites merge
// recursively. Explicit fields with no same-named header column are
// ignored. The header keeps authority over column order and count.
func applyDeclaredTypes(fields, declared []Field) ([]Field, error) {
	byName := make(map[string]Field, len(declared))
	for _, d := range declared {
		byName[d.Name] = d
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		d, ok := byName[f.Name]
		if !ok {
			out[i] = f
			continue
		}
		merged, err := mergeDeclared(f, d)
		if err != nil {
			return nil, err
		}
		out[i] = merged
	}
	return out, nil
}

func mergeDeclared(header, declared Field) (Field, error) {
	switch {
	case declared.Type == "":
		return header, nil
	case header.Type == "" && declared.Type != TypeObject && declared.Type != TypeArray:
		header.Type = declared.Type
		return header, nil
	case header.Type == "":
		// A bare column adopting composite structure: hand-authored
		// documents may omit composite notation from the header and
		// rely on the explicit schema for the positional contract.
		return declared, nil
	case header.Type == TypeObject && declared.Type == TypeObject:
		props, err := applyDeclaredTypes(header.Properties, declared.Properties)
		if err != nil {
			return Field{}, err
		}
		header.Properties = props
		return header, nil
	case header.Type == TypeArray && declared.Type == TypeArray:
		items, err := applyDeclaredTypes(header.Items, declared.Items)
		if err != nil {
			return Field{}, err
		}
		header.Items = items
		return header, nil
	default:
		return Field{}, &SchemaError{Field: header.Name,
			Detail: fmt.Sprintf("wire header declares a %s field, schema declares %s", headerKind(header.Type), declared.Type)}
	}
}

func headerKind(t FieldType) string {
	if t == "" {
		return "scalar"
	}
	return string(t)
}
