package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/aoc-web/internal/client"
	"github.com/yourusername/aoc-web/internal/config"
)

var (
	serverURL   string
	apiToken    string
	submitFile  string
	generateYrs []int
)

func init() {
	for _, cmd := range []*cobra.Command{submitCmd, generateCmd} {
		cmd.PersistentFlags().StringVar(&serverURL, "url", "", "API base URL (defaults to client.url)")
		cmd.PersistentFlags().StringVar(&apiToken, "token", "", "API token (defaults to client.token)")
	}
	submitCmd.PersistentFlags().StringVarP(&submitFile, "file", "f", "-", "JSON file holding one record or an array, - for stdin")
	submitCmd.AddCommand(submitBenchmarksCmd, submitParticipantsCmd)
	generateCmd.Flags().IntSliceVarP(&generateYrs, "year", "y", nil, "Year to regenerate (repeatable)")
	_ = generateCmd.MarkFlagRequired("year")
}

func newClient() (*client.Client, *logrus.Logger, error) {
	cfg, appLog, err := loadClientConfig()
	if err != nil {
		return nil, nil, err
	}
	return newClientFromConfig(&cfg.Client, appLog)
}

func newClientFromConfig(cc *config.ClientConfig, appLog *logrus.Logger) (*client.Client, *logrus.Logger, error) {
	url := cc.URL
	if serverURL != "" {
		url = serverURL
	}
	token := cc.Token
	if apiToken != "" {
		token = apiToken
	}

	httpCfg := client.DefaultHTTPConfig()
	if cc.TimeoutSeconds > 0 {
		httpCfg.Timeout = cc.Timeout()
	}
	httpCfg.MaxRetries = cc.RetryAttempts

	c, err := client.New(url, token, httpCfg, appLog)
	if err != nil {
		return nil, nil, err
	}
	return c, appLog, nil
}

// readRecords decodes a single JSON object or an array of them into []T.
func readRecords[T any](path string) ([]T, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '{' {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return []T{one}, nil
	}

	var many []T
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return many, nil
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit records to a running server",
}

func printJSON(v any) error {
	return json.NewEncoder(os.Stdout).Encode(v)
}
