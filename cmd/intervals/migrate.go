// ABOUTME: CLI command for moving intervals between storage backends.
// ABOUTME: Copies the stored document to another backend and can switch the config to it.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/config"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy intervals to another storage backend",
	Long: `Copy every interval from the current backend to another one.

BACKENDS:

  sqlite   single-file SQLite database (default)
  badger   embedded key-value store
  file     plain JSON file
  charm    Charm KV, synced to Charm Cloud

The destination lives in the same data directory. It must not already
hold intervals unless --force is given. With --switch the config is
updated so later commands use the destination.

EXAMPLES:

  intervals migrate --to file
  intervals migrate --to badger --switch
  intervals migrate --to sqlite --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == "" {
			return fmt.Errorf("--to is required (one of %s)", strings.Join(config.Backends, ", "))
		}
		if migrateTo == cfg.GetBackend() {
			return fmt.Errorf("already using the %s backend", migrateTo)
		}

		dst, err := config.OpenBackend(migrateTo, cfg.GetDataDir(), logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", migrateTo, err)
		}
		defer dst.Close()

		// Flush memory first so the copy includes anything Load recovered.
		if err := store.Persist(); err != nil {
			return fmt.Errorf("failed to save current data: %w", err)
		}

		summary, err := storage.MigrateData(store.Blob(), dst, migrateForce)
		if errors.Is(err, storage.ErrDestinationNotEmpty) {
			return fmt.Errorf("%s backend %w; use --force to overwrite", migrateTo, err)
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %d interval(s) across %d date(s) from %s to %s\n",
			summary.Intervals, summary.Dates, cfg.GetBackend(), migrateTo)

		if migrateSwitch {
			cfg.Backend = migrateTo
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(out, "  Now using the %s backend (%s)\n", migrateTo, config.GetConfigPath())
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger, file or charm")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite a destination that already has intervals")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "use the destination backend from now on")
	rootCmd.AddCommand(migrateCmd)
}
