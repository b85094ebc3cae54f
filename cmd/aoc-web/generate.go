package main

import (
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask a running server to regenerate summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		for _, year := range generateYrs {
			keys, err := c.GenerateSummaries(cmd.Context(), year)
			if err != nil {
				return err
			}
			if err := printJSON(keys); err != nil {
				return err
			}
		}
		return nil
	},
}
