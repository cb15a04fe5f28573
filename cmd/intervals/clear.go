// ABOUTME: CLI command for clearing every interval on a date.
// ABOUTME: Asks for confirmation unless --yes is given.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all intervals on a date",
	Long: `Remove every interval planned for a date. Other dates are untouched.

EXAMPLES:

  intervals clear
  intervals clear --date 2025-06-15 -y`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := selectedDate()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		n := len(store.Get(key))
		if n == 0 {
			fmt.Fprintf(out, "No intervals on %s.\n", key)
			return nil
		}

		if !clearYes {
			fmt.Fprintf(out, "Remove %d interval(s) on %s? [y/N] ", n, key)
			response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && response == "" {
				return fmt.Errorf("failed to read response: %w", err)
			}
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		store.Clear(key)
		color.New(color.FgYellow).Fprintf(out, "✗ Cleared %d interval(s) on %s\n", n, key)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
