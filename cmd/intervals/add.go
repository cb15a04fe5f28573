// ABOUTME: CLI command for adding intervals to a date.
// ABOUTME: Validates the kind and duration before appending to the store.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <kind> <seconds>",
	Aliases: []string{"a"},
	Short:   "Add an interval",
	Long: `Append an interval to a date's workout.

KINDS:

  run    walk

The duration is a number of seconds greater than zero. Fractions are allowed
and count down as a whole extra second.

EXAMPLES:

  intervals add run 60
  intervals add walk 30 --date tomorrow
  intervals add Run 12.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := selectedDate()
		if err != nil {
			return err
		}

		iv, err := store.Add(key, args[0], args[1])
		if errors.Is(err, models.ErrUnknownKind) {
			return fmt.Errorf("%w\nValid kinds: %s", err, kindList())
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s %s\n", iv.Kind, storage.FormatClock(iv.WholeSeconds()))
		fmt.Fprintf(out, "  %s %s  %d in plan\n",
			color.New(color.Faint).Sprint(iv.ShortID()),
			key,
			len(store.Get(key)))
		return nil
	},
}

func kindList() string {
	names := make([]string, 0, len(models.Kinds()))
	for _, k := range models.Kinds() {
		names = append(names, strings.ToLower(string(k)))
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(addCmd)
}
