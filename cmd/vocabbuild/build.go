package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naturkoll/vocabbuild/internal/config"
	"github.com/naturkoll/vocabbuild/internal/database"
	"github.com/naturkoll/vocabbuild/internal/inat"
	"github.com/naturkoll/vocabbuild/internal/log"
	"github.com/naturkoll/vocabbuild/internal/model"
	"github.com/naturkoll/vocabbuild/internal/report"
	"github.com/naturkoll/vocabbuild/internal/vocab"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build vocabulary artifacts for all configured groups",
		Long: `Build runs the fetch/merge/enrich/assemble pipeline for every group in
the configuration file and writes one JSON artifact per group.

Groups are processed strictly in configured order, one at a time. An
artifact is only written after its group's pipeline completes; a fatal
error (network failure, exhausted retry budget) aborts the run and leaves
already-written artifacts in place.

Examples:
  # Build using vocabbuild.yml from the current directory
  vocabbuild build

  # Use a specific configuration file and output directory
  vocabbuild build -c groups.yml -o out

  # Write a markdown run summary alongside the artifacts
  vocabbuild build --summary summary.md

  # Deeper pagination for very large groups
  vocabbuild build --max-pages 10`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: vocabbuild.yml in current or XDG config directory)")
	cmd.Flags().StringP("output", "o", "",
		"Output directory for JSON artifacts (default from config file or \"data\")")
	cmd.Flags().StringP("summary", "s", "",
		"Write a markdown run summary to the specified file")
	cmd.Flags().IntP("max-pages", "p", 0,
		"Maximum species-counts pages per source taxon (overrides config file)")

	return cmd
}

// runBuildCmd executes the build command.
func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewProgressLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runBuild(ctx, cfg, logger)
}

// buildConfig creates a Config from the configuration file and flags.
// Flags set explicitly on the command line win over file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. Without one, a missing file is only an error later because
	// there are no groups to build.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputDir, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	cfg.SummaryFile, err = cmd.Flags().GetString("summary")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
		if err != nil {
			return nil, err
		}
	}

	// Always journal run outcomes using the XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runBuild executes the full build: one pipeline run per group, artifacts
// written as each group completes, then summary and history.
func runBuild(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startedAt := time.Now()

	client := inat.NewClient(append(
		inat.OptionsFromConfig(cfg),
		inat.WithLogger(logger),
	)...)

	logger.Info("starting build",
		"groups", len(cfg.Groups),
		"placeId", cfg.PlaceID,
		"locale", cfg.Locale,
		"outputDir", cfg.OutputDir,
	)

	reports := make([]*model.GroupReport, 0, len(cfg.Groups))
	for _, group := range cfg.Groups {
		rep := model.NewGroupReport(group)

		pipeline := vocab.DefaultPipeline(client, vocab.WithLogger(logger))
		if err := pipeline.Execute(ctx, rep); err != nil {
			return fmt.Errorf("group %q failed: %w", group.Label, err)
		}

		if err := writeArtifact(cfg, rep); err != nil {
			return err
		}
		reports = append(reports, rep)

		logger.Info("group complete",
			"group", group.Label,
			"written", rep.Written(),
			"skipped", rep.Skipped,
			"duration", rep.Duration().Round(time.Millisecond),
		)
	}

	run := model.NewRunRecordFromReports(startedAt, reports)

	if cfg.SummaryFile != "" {
		if err := writeSummary(cfg.SummaryFile, &run); err != nil {
			return err
		}
	}

	// History is best effort: artifacts are already on disk.
	if cfg.SaveToDB {
		if err := saveRunHistory(ctx, cfg.DBDir, &run); err != nil {
			logger.Warn("failed to save run history", "error", err)
		}
	}

	logger.Info("build complete",
		"groups", len(run.Groups),
		"entries", run.EntryCount(),
		"duration", time.Since(startedAt).Round(time.Millisecond),
	)
	return nil
}

// writeArtifact writes one group's JSON artifact to the output directory.
func writeArtifact(cfg *config.Config, rep *model.GroupReport) error {
	path := report.ArtifactPath(cfg.OutputDir, rep.Group.Label, cfg.RegionSlug)

	f, err := report.CreateFile(path)
	if err != nil {
		return err
	}

	if _, err := report.NewJSONWriter(f).WriteGroup(rep); err != nil {
		_ = f.Close()
		return fmt.Errorf("write artifact %q: %w", path, err)
	}
	return f.Close()
}

// writeSummary writes the markdown run summary to path.
func writeSummary(path string, run *model.RunRecord) error {
	f, err := report.CreateFile(path)
	if err != nil {
		return err
	}

	if _, err := report.NewMarkdownWriter(f).WriteRun(run); err != nil {
		_ = f.Close()
		return fmt.Errorf("write summary %q: %w", path, err)
	}
	return f.Close()
}

// saveRunHistory journals the run summary to the history database.
func saveRunHistory(ctx context.Context, dbDir string, run *model.RunRecord) error {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	return db.SaveRun(ctx, run)
}
