// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the toon and
// toon-mcp binaries.
//
// Release builds stamp the commit metadata via -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/toon/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Unstamped development builds report the bare semantic version.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set via -ldflags at build time.
var (
	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"

	// GitCommit is the short git SHA of the build. Empty when the build
	// was not stamped.
	GitCommit = ""

	// GitDirty is "true" when the build had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = ""
)

// Info returns the one-line version string used by --version output:
// the semantic version, plus commit and build metadata when stamped.
func Info() string {
	if GitCommit == "" {
		return Version
	}
	commit := GitCommit
	if GitDirty == "true" {
		commit += "-dirty"
	}
	if BuildTime == "" {
		return fmt.Sprintf("%s (%s)", Version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Full returns Info plus the Go toolchain and platform, for the
// version subcommand.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
