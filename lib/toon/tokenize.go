// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package toon

import (
	"fmt"
	"strings"
)

// splitTopLevel splits s on commas at bracket depth zero, honoring
// quoted sections. Quotes suspend all structural interpretation; a
// doubled quote inside a quoted section is an escaped quote character.
// Returned tokens are raw substrings of s: surrounding whitespace,
// quote characters, and escape sequences are preserved for the caller
// to interpret.
//
// A trailing comma yields a final empty token, so the token count is
// always one more than the number of top-level commas. The empty string
// splits to a single empty token; callers that treat empty input as
// zero items must check before calling.
//
// line is the 1-based document line number used in error context.
func splitTopLevel(s string, line int) ([]string, error) {
	tokens := make([]string, 0, 8)
	depth := 0
	inQuote := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '"' {
				if i+1 < len(s) && s[i+1] == '"' {
					i++ // escaped quote, stay inside
					continue
				}
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return nil, &ParseError{Line: line, Detail: fmt.Sprintf("unbalanced %q at offset %d in %s", c, i, clip(s))}
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, s[start:i])
				start = i + 1
			}
		}
	}
	if inQuote {
		return nil, &ParseError{Line: line, Detail: fmt.Sprintf("unterminated quote in %s", clip(s))}
	}
	if depth != 0 {
		return nil, &ParseError{Line: line, Detail: fmt.Sprintf("%d unclosed bracket(s) in %s", depth, clip(s))}
	}
	return append(tokens, s[start:]), nil
}

// unquote interprets a quoted token: the surrounding quotes are
// stripped and each doubled quote collapses to one. The token must
// close with a quote and carry nothing after it.
func unquote(token string, line int) (string, error) {
	if len(token) < 2 {
		return "", &ParseError{Line: line, Detail: fmt.Sprintf("unterminated quote in %s", clip(token))}
	}
	var b strings.Builder
	b.Grow(len(token) - 2)
	for i := 1; i < len(token); i++ {
		c := token[i]
		if c != '"' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(token) && token[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		if i != len(token)-1 {
			return "", &ParseError{Line: line, Detail: fmt.Sprintf("unexpected text after closing quote in %s", clip(token))}
		}
		return b.String(), nil
	}
	return "", &ParseError{Line: line, Detail: fmt.Sprintf("unterminated quote in %s", clip(token))}
}

// clip renders s for an error message, truncated so a pathological
// line does not flood logs.
func clip(s string) string {
	const max = 60
	if len(s) <= max {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q...", s[:max])
}
