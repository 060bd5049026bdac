// ABOUTME: Root command wiring for the mariposa CLI.
// ABOUTME: Opens the stores and shared logger before any subcommand runs.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/mariposa/internal/assets"
	"github.com/harper/mariposa/internal/config"
	"github.com/harper/mariposa/internal/store"
)

var (
	cfg        *config.Config
	logger     *slog.Logger
	noteStore  *store.Store
	assetStore *assets.Store
)

var rootCmd = &cobra.Command{
	Use:     "mariposa",
	Short:   "Personal notes and sticky board",
	Long:    `Mariposa stores notes as markdown files with YAML frontmatter and serves them over REST and MCP.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local overrides; absent .env is fine in production.
		_ = godotenv.Load()
		cfg = config.Load()

		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			cfg.DataDir = dir
		}

		level := slog.LevelInfo
		if cfg.Environment == "dev" {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		var err error
		noteStore, err = store.Open(cfg.DataDir, logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		assetStore, err = assets.Open(filepath.Join(cfg.DataDir, "images"), logger)
		if err != nil {
			return fmt.Errorf("open asset store: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (overrides MARIPOSA_DATA_DIR)")
}
