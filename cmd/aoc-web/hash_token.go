package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/aoc-web/internal/auth"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token [token]",
	Short: "Print the argon2id hash to put in auth.token_hash",
	Long:  `Hashes the given token, or the first line of stdin, with the default argon2id parameters.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read token from stdin: %w", err)
			}
			token = strings.TrimRight(line, "\r\n")
		}
		if token == "" {
			return fmt.Errorf("token must not be empty")
		}

		hash, err := auth.HashToken(token, auth.DefaultParams)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}
