package main

import (
	"github.com/spf13/cobra"

	"github.com/yourusername/aoc-web/internal/models"
)

var submitBenchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Upsert benchmark results",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords[models.BenchmarkCreate](submitFile)
		if err != nil {
			return err
		}

		c, appLog, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ids, err := c.SubmitBenchmarks(cmd.Context(), records)
		if err != nil {
			return err
		}
		appLog.WithField("count", len(ids)).Info("Benchmarks submitted")
		return printJSON(ids)
	},
}

var submitParticipantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "Upsert participant registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords[models.Participant](submitFile)
		if err != nil {
			return err
		}

		c, appLog, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		keys, err := c.SubmitParticipants(cmd.Context(), records)
		if err != nil {
			return err
		}
		appLog.WithField("count", len(keys)).Info("Participants submitted")
		return printJSON(keys)
	},
}
