package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/aoc-web/internal/database"
	"github.com/yourusername/aoc-web/internal/repository"
	"github.com/yourusername/aoc-web/internal/service"
)

var summarizeYears []int

func init() {
	summarizeCmd.Flags().IntSliceVarP(&summarizeYears, "year", "y", nil, "Year to summarize (repeatable, defaults to summaries.years)")
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Regenerate leaderboard summaries directly against the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, appLog, err := loadServerConfig(ctx)
		if err != nil {
			return err
		}

		years := summarizeYears
		if len(years) == 0 {
			years = cfg.Summaries.Years
		}
		if len(years) == 0 {
			return fmt.Errorf("no years given: pass --year or set summaries.years")
		}

		db, err := database.Initialize(ctx, cfg, appLog)
		if err != nil {
			return err
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
		summaries := service.NewSummaryService(repos.Benchmark, repos.Summary, 0, appLog)

		enc := json.NewEncoder(os.Stdout)
		for _, year := range years {
			keys, err := summaries.Generate(ctx, year, "cli")
			if err != nil {
				return err
			}
			if err := enc.Encode(keys); err != nil {
				return err
			}
		}
		return nil
	},
}
