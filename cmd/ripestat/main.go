// ripestat is a CLI tool that queries the RIPEstat Data API for routing
// and registry information.
package main

import (
	"github.com/kvanhoose/ripestat/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
