// Package main provides the entry point for the vocabbuild CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vocabbuild.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocabbuild",
		Short: "Build nature vocabulary lists from iNaturalist observation data",
		Long: `vocabbuild fetches the most frequently observed taxa per configured group
(birds, insects, mosses, ...) from the iNaturalist API, enriches them with
taxonomy details and localized names, attaches one example observation per
taxon, and writes one JSON artifact per group.

Fetching is strictly sequential and rate-limit aware. A full build with the
default Swedish groups takes a few minutes.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
