// ABOUTME: Root Cobra command for the intervals CLI.
// ABOUTME: Loads config, builds the logger and owns the store lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/config"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *log.Logger
	store  *storage.Store

	dateFlag     string
	logLevelFlag string
)

// storeless commands, and their subcommands, never open the data store.
var storeless = map[string]bool{
	"version":       true,
	"help":          true,
	"install-skill": true,
	"completion":    true,
	"config":        true,
}

func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if storeless[c.Name()] {
			return false
		}
	}
	return true
}

var rootCmd = &cobra.Command{
	Use:   "intervals",
	Short: "Run/walk interval workout timer",
	Long: `Intervals plans run/walk workouts per day and counts them down.

Each day holds an ordered list of intervals such as "Run 60s" or "Walk 30s".
'intervals run' counts down through the day's list one second at a time and
beeps every time it moves to the next interval and again when it finishes.

QUICK START:

  $ intervals add run 60          # Run for a minute
  $ intervals add walk 30         # Then walk for 30 seconds
  $ intervals list                # See today's plan
  $ intervals run                 # Start the countdown

PLANNING OTHER DAYS:

  $ intervals add run 90 --date tomorrow
  $ intervals list --date 2025-06-15
  $ intervals list --all

STORAGE:

  Intervals are saved as one document in the configured backend
  (sqlite by default, or badger, file, charm). See 'intervals config'.

MCP INTEGRATION:

  Run 'intervals mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "intervals": { "command": "intervals", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStore(cmd) {
			return nil
		}
		return openStore(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func openStore(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = cfg.NewLogger(cmd.ErrOrStderr(), logLevelFlag)
	if err != nil {
		return err
	}

	blob, err := cfg.OpenBlob(logger)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	store = storage.NewStore(blob, logger)
	// A missing or unreadable blob starts empty; Load already logged why.
	_ = store.Load()
	return nil
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// selectedDate resolves --date against the local clock.
func selectedDate() (string, error) {
	return models.ParseDateKey(dateFlag, time.Now())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dateFlag, "date", "d", "", "date to use: YYYY-MM-DD, today, yesterday or tomorrow (default today)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (overrides config)")
}
