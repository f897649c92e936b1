// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"time"

	"github.com/bureau-foundation/toon/lib/clock"
)

// Stats records the throughput of one encode or decode call. Bytes is
// the UTF-8 encoded length of the wire text; the rates are derived from
// it and the wall-clock duration.
type Stats struct {
	Records          int           `json:"records"`
	Bytes            int           `json:"bytes"`
	Duration         time.Duration `json:"duration_ns"`
	RecordsPerSecond float64       `json:"records_per_second"`
	MBPerSecond      float64       `json:"mb_per_second"`
}

// DecodeWithStats is DecodeWithOptions instrumented with wall-clock
// throughput measurement. The decode result and error behavior are
// identical to the uninstrumented call; on error the returned Stats is
// zero.
func DecodeWithStats(text string, options DecodeOptions) ([]Record, Stats, error) {
	return decodeWithStats(clock.Real(), text, options)
}

func decodeWithStats(c clock.Clock, text string, options DecodeOptions) ([]Record, Stats, error) {
	start := c.Now()
	records, err := DecodeWithOptions(text, options)
	elapsed := c.Now().Sub(start)
	if err != nil {
		return nil, Stats{}, err
	}
	return records, newStats(len(records), len(text), elapsed), nil
}

// EncodeWithStats is EncodeWithSchema instrumented with wall-clock
// throughput measurement, under the same contract as DecodeWithStats.
func EncodeWithStats(records []Record, schema *Schema) (string, Stats, error) {
	return encodeWithStats(clock.Real(), records, schema)
}

func encodeWithStats(c clock.Clock, records []Record, schema *Schema) (string, Stats, error) {
	start := c.Now()
	text, err := EncodeWithSchema(records, schema)
	elapsed := c.Now().Sub(start)
	if err != nil {
		return "", Stats{}, err
	}
	return text, newStats(len(records), len(text), elapsed), nil
}

func newStats(records, bytes int, elapsed time.Duration) Stats {
	s := Stats{Records: records, Bytes: bytes, Duration: elapsed}
	if elapsed > 0 {
		seconds := elapsed.Seconds()
		s.RecordsPerSecond = float64(records) / seconds
		s.MBPerSecond = float64(bytes) / (1 << 20) / seconds
	}
	return s
}
