package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/naturkoll/vocabbuild/internal/config"
)

//go:embed templates/vocabbuild.yml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new vocabbuild configuration file",
		Long: `Init creates a new vocabbuild.yml configuration file in the current directory.

The generated file includes:
- The default Swedish region settings (place 7599, locale sv)
- The standard eight vocabulary groups with their source taxa
- Documentation for all available options

Examples:
  # Create vocabbuild.yml in current directory
  vocabbuild init

  # Create config file at a specific path
  vocabbuild init -o mygroups.yml

  # Force overwrite existing file
  vocabbuild init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/vocabbuild.yml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to adjust:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The region (placeId, locale, region slug)")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Which groups to build and their source taxa")
	fmt.Fprintln(cmd.OutOrStdout(), "  - How many taxa each group retains (topN)")

	return nil
}
