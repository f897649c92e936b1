// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bureau-foundation/toon/lib/toon"
)

func (s *Server) registerCodecTools() {
	s.mcp.AddTool(mcp.NewTool("toon_encode",
		mcp.WithDescription("Encode a JSON array of objects as a TOON document: a compact tabular text format with one header line declaring the record count and field layout, then one line per record. Uses far fewer tokens than JSON for uniform records."),
		mcp.WithString("records", mcp.Description("JSON array of objects to encode"), mcp.Required()),
		mcp.WithString("schema", mcp.Description("Schema document (JSON or YAML) pinning field order and declared types; inferred from the first record if omitted")),
	), s.handleEncode)

	s.mcp.AddTool(mcp.NewTool("toon_decode",
		mcp.WithDescription("Decode a TOON document back to a JSON array of objects. Plain values are coerced by inference (boolean, number, date, string) unless a type is declared; quoted values stay strings."),
		mcp.WithString("text", mcp.Description("TOON document to decode"), mcp.Required()),
		mcp.WithBoolean("no_coerce", mcp.Description("Disable type coercion; every value stays a string")),
		mcp.WithString("missing", mcp.Description("Missing-field policy: null, omit, or error (default null)")),
		mcp.WithString("dates", mcp.Description("Date parsing: auto, iso, or unix (default auto)")),
		mcp.WithString("date_layout", mcp.Description("Parse dates with a Go time layout (overrides dates)")),
		mcp.WithString("schema", mcp.Description("Schema document (JSON or YAML) with declared field types")),
	), s.handleDecode)

	s.mcp.AddTool(mcp.NewTool("toon_validate",
		mcp.WithDescription("Check whether a TOON document decodes cleanly. Returns a verdict with the failing line and field when the document is malformed."),
		mcp.WithString("text", mcp.Description("TOON document to check"), mcp.Required()),
		mcp.WithString("missing", mcp.Description("Missing-field policy: null, omit, or error (default null)")),
		mcp.WithString("schema", mcp.Description("Schema document (JSON or YAML) with declared field types")),
	), s.handleValidate)
}

func (s *Server) handleEncode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	recordsJSON, _ := args["records"].(string)
	records, err := parseRecordsArg(recordsJSON)
	if err != nil {
		return nil, err
	}

	var schema *toon.Schema
	if text, ok := args["schema"].(string); ok && text != "" {
		schema, err = parseSchemaArg(text)
		if err != nil {
			return nil, err
		}
	}

	text, err := toon.EncodeWithSchema(records, schema)
	if err != nil {
		return nil, err
	}
	return textResult(text), nil
}

func (s *Server) handleDecode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	options, err := decodeOptionsFromArgs(args)
	if err != nil {
		return nil, err
	}

	text, _ := args["text"].(string)
	records, err := toon.DecodeWithOptions(text, options)
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []toon.Record{}
	}
	return jsonResult(records)
}

func (s *Server) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	options, err := decodeOptionsFromArgs(args)
	if err != nil {
		return nil, err
	}

	text, _ := args["text"].(string)
	records, err := toon.DecodeWithOptions(text, options)
	if err == nil {
		return jsonResult(map[string]any{
			"valid":   true,
			"records": len(records),
		})
	}

	verdict := map[string]any{
		"valid": false,
		"error": err.Error(),
	}
	var parseErr *toon.ParseError
	var missingErr *toon.MissingFieldError
	var coercionErr *toon.CoercionError
	switch {
	case errors.As(err, &parseErr):
		verdict["line"] = parseErr.Line
	case errors.As(err, &missingErr):
		verdict["line"] = missingErr.Line
		verdict["field"] = missingErr.Field
	case errors.As(err, &coercionErr):
		verdict["line"] = coercionErr.Line
		verdict["field"] = coercionErr.Field
	}
	return jsonResult(verdict)
}
