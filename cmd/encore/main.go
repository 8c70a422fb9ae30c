// Package main provides the entry point for the encore CLI tool.
package main

import (
	"github.com/govcongiants/encore/cmd/encore/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
