// Package cli provides the invmock CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "invmock",
	Short: "invmock is a mock inventory data server",
	Long: `invmock serves a GraphQL endpoint backed by an in-memory, seeded
inventory data set: items, stock batches, shipments, requisitions, and
stocktakes. It exists so a browser client can be developed and demonstrated
without a real backend.

All data lives in memory. The resetData mutation restores the original seed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
