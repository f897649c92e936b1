// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sizereport measures the wire cost of a record set across
// serialization formats: the tabular text format, JSON, and CBOR, each
// raw and under zstd and LZ4 compression, plus an LLM token estimate
// for the text formats. The numbers answer the question the format
// exists for: how much smaller does tabular text make a given payload.
package sizereport

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/toon/lib/toon"
)

// FormatSize is the measured cost of one serialization of a record set.
// The compressed sizes fall back to Bytes when compression does not
// shrink the payload, mirroring what a storage layer would do.
type FormatSize struct {
	Bytes     int `json:"bytes"`
	ZstdBytes int `json:"zstd_bytes"`
	LZ4Bytes  int `json:"lz4_bytes"`

	// TokenEstimate approximates LLM token cost at the common
	// four-characters-per-token heuristic. Zero for binary formats.
	TokenEstimate int `json:"token_estimate,omitempty"`
}

// Report compares the wire cost of one record set across formats.
type Report struct {
	Records int        `json:"records"`
	Tabular FormatSize `json:"toon"`
	JSON    FormatSize `json:"json"`
	CBOR    FormatSize `json:"cbor"`

	// SavingsVsJSONPercent is the raw byte reduction of the tabular
	// text relative to JSON; TokenSavingsVsJSONPercent the same for
	// the token estimates. Negative when the tabular form is larger.
	SavingsVsJSONPercent      float64 `json:"savings_vs_json_percent"`
	TokenSavingsVsJSONPercent float64 `json:"token_savings_vs_json_percent"`
}

// zstdEncoder is reused across calls; zstd.Encoder is safe for
// concurrent use.
var zstdEncoder *zstd.Encoder

// cborMode uses Core Deterministic Encoding (RFC 8949 §4.2) so the
// measured size is stable across runs of the same record set.
var cborMode cbor.EncMode

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("sizereport: zstd encoder initialization failed: " + err.Error())
	}

	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("sizereport: CBOR encoder initialization failed: " + err.Error())
	}
}

// Compare serializes records in every measured format and returns the
// size comparison. The schema is handed to the tabular encoder as-is:
// nil infers one from the first record.
func Compare(records []toon.Record, schema *toon.Schema) (*Report, error) {
	tabular, err := toon.EncodeWithSchema(records, schema)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []toon.Record{}
	}
	jsonBytes, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	cborBytes, err := cborMode.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding CBOR: %w", err)
	}

	report := &Report{
		Records: len(records),
		Tabular: measureText(tabular),
		JSON:    measureText(string(jsonBytes)),
		CBOR:    measureBinary(cborBytes),
	}
	report.SavingsVsJSONPercent = savings(report.Tabular.Bytes, report.JSON.Bytes)
	report.TokenSavingsVsJSONPercent = savings(report.Tabular.TokenEstimate, report.JSON.TokenEstimate)
	return report, nil
}

func measureText(text string) FormatSize {
	data := []byte(text)
	return FormatSize{
		Bytes:         len(data),
		ZstdBytes:     zstdSize(data),
		LZ4Bytes:      lz4Size(data),
		TokenEstimate: tokenEstimate(text),
	}
}

func measureBinary(data []byte) FormatSize {
	return FormatSize{
		Bytes:     len(data),
		ZstdBytes: zstdSize(data),
		LZ4Bytes:  lz4Size(data),
	}
}

func zstdSize(data []byte) int {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return len(data)
	}
	return len(compressed)
}

func lz4Size(data []byte) int {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)
	written, err := lz4.CompressBlock(data, destination, nil)
	// CompressBlock returns 0 when the data is incompressible.
	if err != nil || written == 0 || written >= len(data) {
		return len(data)
	}
	return written
}

// tokenEstimate counts runes, not bytes: tokenizers operate on text,
// and multibyte characters do not cost four times their share.
func tokenEstimate(text string) int {
	runes := utf8.RuneCountInString(text)
	return (runes + 3) / 4
}

func savings(measured, baseline int) float64 {
	if baseline == 0 {
		return 0
	}
	return float64(baseline-measured) / float64(baseline) * 100
}
