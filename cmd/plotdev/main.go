// Package main is the entry point for the plotdev CLI application.
package main

import (
	"github.com/plotlyst/plotdev/cmd/plotdev/cmd"
)

// Version information - set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Date = date
	cmd.Execute()
}
