// ABOUTME: CLI command for deleting a single interval.
// ABOUTME: Supports deletion by full ID or unique ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an interval",
	Long: `Delete an interval from a date by its ID or ID prefix.

The ID prefix is shown in the second column of 'intervals list' output.
If the prefix matches more than one interval, nothing is deleted.

EXAMPLES:

  intervals delete abc12345
  intervals rm abc1 --date tomorrow`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := selectedDate()
		if err != nil {
			return err
		}

		iv, err := store.Resolve(key, args[0])
		if err != nil {
			return fmt.Errorf("%s on %s: %w", args[0], key, err)
		}

		store.Remove(key, iv.ID)

		out := cmd.OutOrStdout()
		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s %s\n", iv.Kind, storage.FormatClock(iv.WholeSeconds()))
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(iv.ShortID()), key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
