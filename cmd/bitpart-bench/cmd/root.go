// Package cmd provides the bitpart-bench CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the bitpart-bench CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bitpart-bench",
		Short: "Demonstrate and benchmark the bitpart range-search index",
		Long: `bitpart-bench builds a bitpart index over a sample dataset, runs a
range search, and checks the result against a brute-force linear scan.`,
	}

	cmd.AddCommand(newRunCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
