package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/naturkoll/vocabbuild/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultConfigFile {
			t.Errorf("expected default %q, got %q", config.DefaultConfigFile, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates a loadable config file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "vocabbuild.yml")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "groups:") {
			t.Error("expected config to contain 'groups:'")
		}

		// The template must parse as a valid config file.
		var cf config.File
		if err := yaml.Unmarshal(content, &cf); err != nil {
			t.Fatalf("template is not valid YAML: %v", err)
		}
		if cf.PlaceID != config.DefaultPlaceID {
			t.Errorf("placeId = %d, want %d", cf.PlaceID, config.DefaultPlaceID)
		}
		if len(cf.Groups) != 8 {
			t.Errorf("groups = %d, want 8", len(cf.Groups))
		}

		labels := make(map[string][]int)
		for _, g := range cf.Groups {
			labels[g.Label] = g.TaxonIDs
		}
		if ids := labels["mosses"]; len(ids) != 2 {
			t.Errorf("mosses taxonIds = %v, want two source taxa", ids)
		}
		if ids := labels["birds"]; len(ids) != 1 || ids[0] != 3 {
			t.Errorf("birds taxonIds = %v, want [3]", ids)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "vocabbuild.yml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error when file exists")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "vocabbuild.yml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", outputPath, "-f"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "groups:") {
			t.Error("expected file to be overwritten with the template")
		}
	})
}
