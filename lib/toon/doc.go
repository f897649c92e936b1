// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package toon implements a compact, schema-aware text format for
// collections of uniform records. One header line declares the record
// count and the column schema; each record then occupies exactly one
// line of positional values. For tabular data the result is a fraction
// of the equivalent JSON, which matters when documents are billed by
// the token.
//
// # Wire Format
//
//	document  = header NEWLINE record-line*
//	header    = "[" count "]" "{" field-defs "}" ":"
//	field-def = name
//	          | name "{" field-defs "}"      nested object
//	          | name "[{" field-defs "}]"    array of records
//	value     = plain-token | quoted-string | "[" values "]" | "{" values "}" | empty
//
// Commas separate fields and values at bracket depth zero only; quoted
// sections suspend all structural interpretation, and a quote character
// inside a quoted string is escaped by doubling it. The number of
// non-blank body lines must equal the declared count.
//
// Example:
//
//	[2]{id,name,address{city,zip}}:
//	1,Alice,{Berlin,10115}
//	2,"Bob ""the builder""",{Oslo,0150}
//
// # Type Coercion
//
// Plain tokens decode by inference, in fixed order: boolean literal,
// number (int64 for integers, float64 for decimals), date (a token with
// a leading YYYY-MM-DD shape that parses under the active date policy),
// then string. A quoted token is always a verbatim string. Fields with
// a declared type (supplied via DecodeOptions.Schema) coerce strictly
// and fail with a CoercionError instead of falling back.
//
// # Error Handling
//
// Failures classify under package sentinels: ErrInvalidInput for
// unusable call inputs, ErrParse for structural violations,
// ErrMissingField for absent values under the error policy, ErrCoerce
// for values that cannot become their declared type, and ErrSchema for
// schema violations on the encode side. Concrete error types carry the
// line number, field name, and raw value so callers can locate a fault
// without re-parsing. Every error is raised at the point of detection;
// there is no partial-result mode.
//
// # Concurrency
//
// All operations are pure functions over their inputs with no shared
// mutable state, so concurrent calls need no coordination. A single
// call is strictly single-pass and synchronous.
package toon
