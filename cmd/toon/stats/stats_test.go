// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadRecords_JSON(t *testing.T) {
	path := writeFile(t, "users.json", `[{"id": 1, "name": "Alice"}]`)
	records, err := readRecords(path)
	if err != nil {
		t.Fatalf("readRecords: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Alice" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestReadRecords_Document(t *testing.T) {
	path := writeFile(t, "users.toon", "[2]{id,name}:\n1,Alice\n2,Bob\n")
	records, err := readRecords(path)
	if err != nil {
		t.Fatalf("readRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1]["id"] != int64(2) || records[1]["name"] != "Bob" {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestReadRecords_SniffsUnknownExtension(t *testing.T) {
	wire := writeFile(t, "export.dat", "[1]{id}:\n7\n")
	records, err := readRecords(wire)
	if err != nil {
		t.Fatalf("readRecords (wire): %v", err)
	}
	if len(records) != 1 || records[0]["id"] != int64(7) {
		t.Fatalf("unexpected records from wire input: %+v", records)
	}

	jsonish := writeFile(t, "export.txt", `[{"id": 7}]`)
	records, err = readRecords(jsonish)
	if err != nil {
		t.Fatalf("readRecords (json): %v", err)
	}
	if len(records) != 1 || records[0]["id"] != float64(7) {
		t.Fatalf("unexpected records from json input: %+v", records)
	}
}

func TestReadRecords_BadDocument(t *testing.T) {
	// A valid header with a short body is a document with a real error,
	// not grounds for a silent fallback to JSON parsing.
	path := writeFile(t, "short.toon", "[3]{id}:\n1\n")
	_, err := readRecords(path)
	if err == nil {
		t.Fatal("expected error for truncated document")
	}
	if !strings.Contains(err.Error(), "short.toon") {
		t.Errorf("error should name the input file: %v", err)
	}
}
