// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command toon-mcp exposes the codec to AI agents as an MCP server
// speaking JSON-RPC over stdio. Tools cover encoding, decoding,
// validation, schema inference, and size comparison, so an agent can
// move record sets between JSON and the tabular format without shelling
// out to the CLI.
//
// Logs go to stderr; stdout carries only the protocol stream.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/toon/cmd/toon/cli"
	"github.com/bureau-foundation/toon/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	verbose := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--verbose", "-v":
			verbose = true
		case "--version":
			fmt.Printf("toon-mcp %s\n", version.Info())
			return nil
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	return newServer(cli.NewCommandLogger(verbose)).ServeStdio()
}
