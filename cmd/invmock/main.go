// invmock CLI - command-line interface for the invmock data server
package main

import "github.com/invmock/invmock/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
