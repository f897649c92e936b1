// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/sizereport"
	"github.com/bureau-foundation/toon/lib/toon"
)

func (s *Server) registerAnalysisTools() {
	s.mcp.AddTool(mcp.NewTool("toon_infer_schema",
		mcp.WithDescription("Derive a schema from the first record of a JSON array of objects. Returns the schema as canonical JSON, ready to pass back to toon_encode or toon_decode."),
		mcp.WithString("records", mcp.Description("JSON array of objects to derive the schema from"), mcp.Required()),
	), s.handleInferSchema)

	s.mcp.AddTool(mcp.NewTool("toon_stats",
		mcp.WithDescription("Compare the wire cost of a record set across TOON, JSON, and CBOR: raw bytes, zstd and lz4 compressed bytes, and estimated LLM token counts for the text formats."),
		mcp.WithString("records", mcp.Description("JSON array of objects to measure"), mcp.Required()),
		mcp.WithString("schema", mcp.Description("Schema document (JSON or YAML) controlling the tabular encoding")),
	), s.handleStats)
}

func (s *Server) handleInferSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	recordsJSON, _ := args["records"].(string)
	records, err := parseRecordsArg(recordsJSON)
	if err != nil {
		return nil, err
	}

	inferred, err := toon.InferSchema(records)
	if err != nil {
		return nil, err
	}

	data, err := schemafile.MarshalJSON(inferred)
	if err != nil {
		return nil, err
	}
	return textResult(string(data)), nil
}

func (s *Server) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	report, err := sizereport.Compare(records, schema)
	if err != nil {
		return nil, err
	}
	return jsonResult(report)
}
