// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sizereport

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/toon/lib/toon"
)

func sampleRecords(n int) []toon.Record {
	records := make([]toon.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, toon.Record{
			"active": i%2 == 0,
			"id":     int64(i),
			"name":   fmt.Sprintf("user-%04d", i),
			"region": "eu-central-1",
			"score":  float64(i) + 0.5,
		})
	}
	return records
}

func TestCompareMeasurements(t *testing.T) {
	records := sampleRecords(50)
	report, err := Compare(records, nil)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if report.Records != 50 {
		t.Errorf("Records = %d, want 50", report.Records)
	}

	tabular, err := toon.Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if report.Tabular.Bytes != len(tabular) {
		t.Errorf("Tabular.Bytes = %d, want %d", report.Tabular.Bytes, len(tabular))
	}
	jsonBytes, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if report.JSON.Bytes != len(jsonBytes) {
		t.Errorf("JSON.Bytes = %d, want %d", report.JSON.Bytes, len(jsonBytes))
	}
	if report.CBOR.Bytes == 0 {
		t.Error("CBOR.Bytes = 0")
	}

	for name, f := range map[string]FormatSize{
		"toon": report.Tabular, "json": report.JSON, "cbor": report.CBOR,
	} {
		if f.ZstdBytes <= 0 || f.ZstdBytes > f.Bytes {
			t.Errorf("%s: ZstdBytes = %d outside (0, %d]", name, f.ZstdBytes, f.Bytes)
		}
		if f.LZ4Bytes <= 0 || f.LZ4Bytes > f.Bytes {
			t.Errorf("%s: LZ4Bytes = %d outside (0, %d]", name, f.LZ4Bytes, f.Bytes)
		}
	}
	if report.CBOR.TokenEstimate != 0 {
		t.Errorf("CBOR.TokenEstimate = %d, want 0 for a binary format", report.CBOR.TokenEstimate)
	}
}

// Repetitive records are the format's target payload: the key names
// that JSON repeats per record appear once in the tabular header.
func TestCompareSavingsDirection(t *testing.T) {
	report, err := Compare(sampleRecords(200), nil)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if report.Tabular.Bytes >= report.JSON.Bytes {
		t.Errorf("tabular %d bytes >= JSON %d bytes", report.Tabular.Bytes, report.JSON.Bytes)
	}
	if report.SavingsVsJSONPercent <= 0 || report.SavingsVsJSONPercent >= 100 {
		t.Errorf("SavingsVsJSONPercent = %v", report.SavingsVsJSONPercent)
	}
	if report.TokenSavingsVsJSONPercent <= 0 {
		t.Errorf("TokenSavingsVsJSONPercent = %v", report.TokenSavingsVsJSONPercent)
	}
}

func TestCompareDeterministic(t *testing.T) {
	records := sampleRecords(30)
	first, err := Compare(records, nil)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	second, err := Compare(records, nil)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ:\n%+v\n%+v", first, second)
	}
}

func TestCompareZeroRecordsWithSchema(t *testing.T) {
	schema := &toon.Schema{Fields: []toon.Field{{Name: "id"}}}
	report, err := Compare(nil, schema)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if report.Records != 0 {
		t.Errorf("Records = %d, want 0", report.Records)
	}
	if report.JSON.Bytes != len("[]") {
		t.Errorf("JSON.Bytes = %d, want empty array baseline", report.JSON.Bytes)
	}
}

func TestCompareNoSchemaNoRecords(t *testing.T) {
	_, err := Compare(nil, nil)
	if !errors.Is(err, toon.ErrInvalidInput) {
		t.Errorf("Compare = %v, want ErrInvalidInput", err)
	}
}

func TestTokenEstimate(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		// 5 runes, not 7 bytes.
		{"héllo", 2},
	}
	for _, tt := range tests {
		if got := tokenEstimate(tt.text); got != tt.want {
			t.Errorf("tokenEstimate(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCompressionFallsBackToRawSize(t *testing.T) {
	// Short high-entropy input: neither codec can shrink it, so the
	// reported size must equal the raw length rather than exceed it.
	data := []byte("\x01\x9f\x33\xc4")
	if got := zstdSize(data); got != len(data) {
		t.Errorf("zstdSize = %d, want %d", got, len(data))
	}
	if got := lz4Size(data); got != len(data) {
		t.Errorf("lz4Size = %d, want %d", got, len(data))
	}
}

func TestReportJSONShape(t *testing.T) {
	report, err := Compare(sampleRecords(5), nil)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(data)
	for _, key := range []string{`"records"`, `"toon"`, `"json"`, `"cbor"`, `"zstd_bytes"`, `"savings_vs_json_percent"`} {
		if !strings.Contains(text, key) {
			t.Errorf("report JSON missing %q:\n%s", key, text)
		}
	}
}
