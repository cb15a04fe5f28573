// ABOUTME: CLI commands for exporting and importing interval data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export interval data",
	Long: `Export interval data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables, one per date

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include dates on or after this date (YYYY-MM-DD)
  --date         Markdown only: export just this date

EXAMPLES:

  intervals export json                        # Export all data as JSON
  intervals export json -o backup.json         # Save to file
  intervals export yaml                        # Export as YAML
  intervals export markdown --date today       # Today's plan as a table
  intervals export markdown --since 2025-01-01 # Everything from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		since := ""
		if exportSince != "" {
			var err error
			since, err = models.ParseDateKey(exportSince, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
		}

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = store.ExportJSON(since)
		case "yaml":
			data, err = store.ExportYAML(since)
		case "markdown", "md":
			key := ""
			if dateFlag != "" {
				key, err = selectedDate()
				if err != nil {
					return err
				}
			}
			data = []byte(store.ExportMarkdown(key, since))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(out, "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import interval data from JSON or YAML",
	Long: `Import intervals from a file written by 'intervals export json' or
'intervals export yaml'. A raw backup of the stored document is accepted too.

Intervals whose ID already exists on the same date are skipped, so
importing the same file twice is harmless.

EXAMPLES:

  intervals import backup.json
  intervals import plan.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		data, err := storage.ParseExport(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		added, skipped := store.ImportData(data)
		if err := store.Persist(); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d interval(s) from %s (%d skipped)\n", added, filename, skipped)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include dates on or after (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
