// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/toon/lib/schemafile"
	"github.com/bureau-foundation/toon/lib/toon"
	"github.com/bureau-foundation/toon/lib/version"
)

// Server wraps the MCP server with the codec tools registered.
type Server struct {
	mcp    *server.MCPServer
	logger *slog.Logger
}

// newServer creates and configures an MCP server with all tools.
func newServer(logger *slog.Logger) *Server {
	s := &Server{logger: logger}

	s.mcp = server.NewMCPServer(
		"toon-mcp",
		version.Version,
		server.WithToolCapabilities(true),
	)

	s.registerCodecTools()
	s.registerAnalysisTools()

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting stdio server", "version", version.Version)
	return server.ServeStdio(s.mcp)
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// parseRecordsArg decodes the records argument, a JSON array of
// objects. Comments and trailing commas are tolerated.
func parseRecordsArg(text string) ([]toon.Record, error) {
	var records []toon.Record
	if err := json.Unmarshal(jsonc.ToJSON([]byte(text)), &records); err != nil {
		return nil, fmt.Errorf("records must be a JSON array of objects: %w", err)
	}
	return records, nil
}

// parseSchemaArg decodes the schema argument, a schema document in
// JSON or YAML form.
func parseSchemaArg(text string) (*toon.Schema, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		return schemafile.ParseJSON([]byte(text))
	}
	return schemafile.ParseYAML([]byte(text))
}

// decodeOptionsFromArgs maps the shared decode option arguments
// (no_coerce, missing, dates, date_layout, schema) onto DecodeOptions.
// Absent arguments keep the decoder defaults.
func decodeOptionsFromArgs(args map[string]any) (toon.DecodeOptions, error) {
	var options toon.DecodeOptions

	if v, ok := args["no_coerce"].(bool); ok {
		options.DisableCoercion = v
	}
	if v, ok := args["missing"].(string); ok && v != "" {
		policy, err := toon.ParseMissingFieldPolicy(v)
		if err != nil {
			return options, err
		}
		options.MissingFields = policy
	}
	if layout, ok := args["date_layout"].(string); ok && layout != "" {
		options.DateFormat = toon.DateCustom
		options.DateParser = func(s string) (time.Time, error) {
			return time.Parse(layout, s)
		}
	} else if v, ok := args["dates"].(string); ok && v != "" {
		format, err := toon.ParseDateFormat(v)
		if err != nil {
			return options, err
		}
		options.DateFormat = format
	}
	if v, ok := args["schema"].(string); ok && v != "" {
		schema, err := parseSchemaArg(v)
		if err != nil {
			return options, err
		}
		options.Schema = schema
	}

	return options, nil
}
