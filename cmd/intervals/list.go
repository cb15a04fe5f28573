// ABOUTME: CLI command for listing a date's intervals.
// ABOUTME: Shows one date in run order, or a per-date summary with --all.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List intervals",
	Long: `List the intervals planned for a date in the order they will run.

OUTPUT FORMAT:

  Each line shows: #  ID  KIND  DURATION

  The ID is an 8-character prefix you can use with 'intervals delete'.

EXAMPLES:

  intervals list                  # Today's plan
  intervals list --date tomorrow  # Tomorrow's plan
  intervals list --all            # Every date that has intervals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listAll {
			return listDates(out)
		}

		key, err := selectedDate()
		if err != nil {
			return err
		}

		seq := store.Get(key)
		if len(seq) == 0 {
			fmt.Fprintf(out, "No intervals on %s.\n", key)
			return nil
		}

		printSequence(out, key, seq)
		return nil
	},
}

func printSequence(out io.Writer, key string, seq models.Sequence) {
	faint := color.New(color.Faint)
	color.New(color.Bold).Fprintf(out, "%s\n", key)
	for i, iv := range seq {
		fmt.Fprintf(out, "%s %s %s %s\n",
			faint.Sprintf("%2d", i+1),
			faint.Sprint(iv.ShortID()),
			kindColor(iv.Kind).Sprint(padRight(string(iv.Kind), 5)),
			storage.FormatClock(iv.WholeSeconds()))
	}
	fmt.Fprintf(out, "%s %s\n", faint.Sprint("Total"), storage.FormatClock(int(seq.TotalSeconds())))
}

func listDates(out io.Writer) error {
	dates := store.Dates()
	if len(dates) == 0 {
		fmt.Fprintln(out, "No intervals found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, key := range dates {
		seq := store.Get(key)
		fmt.Fprintf(out, "%s %s %s\n",
			key,
			padRight(fmt.Sprintf("%d intervals", len(seq)), 13),
			faint.Sprint(storage.FormatClock(int(seq.TotalSeconds()))))
	}
	return nil
}

func kindColor(k models.IntervalKind) *color.Color {
	if k == models.KindRun {
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgCyan)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "summarize every date with intervals")
	rootCmd.AddCommand(listCmd)
}
