// Package main provides the aoc-web command: the API server plus client and
// maintenance subcommands.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/aoc-web/internal/config"
	"github.com/yourusername/aoc-web/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.AddCommand(serveCmd, summarizeCmd, submitCmd, generateCmd, hashTokenCmd)
}

var rootCmd = &cobra.Command{
	Use:           "aoc-web",
	Short:         "Advent of Code benchmark tracker",
	Long:          `Collects Advent of Code solution benchmarks and serves the per-year leaderboard summaries built from them.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// loadServerConfig loads the full validated configuration used by commands
// that talk to the database.
func loadServerConfig(ctx context.Context) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadAndValidate(ctx, configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment), nil
}

// loadClientConfig loads configuration for commands that only call the API.
// Server-side settings such as the token hash are not required.
func loadClientConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment), nil
}
