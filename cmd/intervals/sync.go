// ABOUTME: CLI commands for Charm Cloud sync of the charm backend.
// ABOUTME: Supports link, unlink, status, now and reset.
package main

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/charm"
	"github.com/spf13/cobra"
)

var syncYes bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync intervals across devices with Charm Cloud",
	Long: `Sync intervals across devices using Charm Cloud.

Sync needs the charm backend:

  intervals migrate --to charm --switch

Your data is encrypted with your SSH key before upload. Every add,
delete and clear is pushed automatically; 'sync now' pulls changes
made on other devices.

COMMANDS:

  link     Link this device to your Charm account
  unlink   Disconnect this device from Charm
  status   Show account and local data info
  now      Push and pull immediately
  reset    Replace local data with the cloud copy (destructive)`,
}

// charmClient returns the open store's Charm client, or an error naming
// the backend in use.
func charmClient() (*charm.Client, error) {
	client, ok := store.Blob().(*charm.Client)
	if !ok {
		return nil, fmt.Errorf("sync requires the charm backend (current: %s); run 'intervals migrate --to charm --switch'", cfg.GetBackend())
	}
	return client, nil
}

func runCharm(cmd *cobra.Command, verb string) error {
	charmCmd := exec.Command("charm", verb)
	charmCmd.Stdin = cmd.InOrStdin()
	charmCmd.Stdout = cmd.OutOrStdout()
	charmCmd.Stderr = cmd.ErrOrStderr()
	if err := charmCmd.Run(); err != nil {
		return fmt.Errorf("failed to %s: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", verb, err)
	}
	return nil
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}
		if err := runCharm(cmd, "link"); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "\n✓ Device linked to Charm")
		if err := client.Sync(); err != nil {
			color.New(color.FgYellow).Fprintf(out, "⚠ Initial sync failed: %v\n", err)
			return nil
		}
		color.New(color.FgGreen).Fprintln(out, "✓ Initial sync complete")
		return store.Load()
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local intervals.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := charmClient(); err != nil {
			return err
		}
		if err := runCharm(cmd, "unlink"); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Device unlinked from Charm")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		id, err := client.ID()
		if err != nil {
			color.New(color.FgYellow).Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'intervals sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		if client.IsReadOnly() {
			color.New(color.FgYellow).Fprintln(out, "⚠ Read-only: another process holds the database")
		} else {
			color.New(color.FgGreen).Fprintln(out, "✓ Connected to Charm")
		}

		total := 0
		dates := store.Dates()
		for _, key := range dates {
			total += len(store.Get(key))
		}
		fmt.Fprintf(out, "  Dates: %d\n", len(dates))
		fmt.Fprintf(out, "  Intervals: %d\n", total)
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}
		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if err := store.Load(); err != nil {
			return fmt.Errorf("failed to reload synced data: %w", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Synced with Charm Cloud")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local intervals and restore them from Charm Cloud.

Use this to fix sync conflicts or to reset a device to the cloud state.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !syncYes {
			fmt.Fprint(out, "This will DELETE local intervals and restore from cloud. Continue? [y/N] ")
			response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		if err := client.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		if err := store.Load(); err != nil {
			return fmt.Errorf("failed to reload restored data: %w", err)
		}
		color.New(color.FgGreen).Fprintln(out, "✓ Local data reset and restored from cloud")
		return nil
	},
}

func init() {
	syncResetCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "skip confirmation prompt")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncResetCmd)
	rootCmd.AddCommand(syncCmd)
}
