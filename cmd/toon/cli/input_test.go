// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadRecords_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	content := `[{"id": 1, "name": "Alice"}, {"id": 2, "name": "Bob"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0]["name"] != "Alice" {
		t.Errorf("records[0][name] = %v, want Alice", records[0]["name"])
	}
}

func TestReadRecords_JSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.jsonc")
	content := `[
		// seeded test user
		{"id": 1, "name": "Alice"},
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
}

func TestReadRecords_NotAnArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.json")
	if err := os.WriteFile(path, []byte(`{"id": 1}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := ReadRecords(path)
	if err == nil {
		t.Fatal("ReadRecords() = nil error for a top-level object")
	}
	if !strings.Contains(err.Error(), "expected a JSON array of objects") {
		t.Errorf("error = %q, want the array-of-objects hint", err.Error())
	}
	if !strings.Contains(err.Error(), "object.json") {
		t.Errorf("error = %q, should name the input file", err.Error())
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("ReadRecords() = nil error for a missing file")
	}
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toon")
	if err := WriteOutput(path, []byte("[0]{id}:\n")); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[0]{id}:\n" {
		t.Errorf("file contents = %q, want %q", string(data), "[0]{id}:\n")
	}
}

func TestInputName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "stdin"},
		{"-", "stdin"},
		{"users.json", "users.json"},
		{"/data/users.json", "/data/users.json"},
	}

	for _, test := range tests {
		if got := InputName(test.path); got != test.want {
			t.Errorf("InputName(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}
