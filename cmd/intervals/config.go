// ABOUTME: CLI commands for viewing and changing intervals configuration.
// ABOUTME: Provides config show, set and path without opening the data store.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change intervals settings.

KEYS:

  backend     sqlite (default), badger, file or charm
  data_dir    where data is stored (default ~/.local/share/intervals)
  sound       auto (default), bell or off
  log_level   debug, info, warn (default) or error

Changing backend does not move existing data; use 'intervals migrate'.

EXAMPLES:

  intervals config              # Same as 'config show'
  intervals config set sound bell
  intervals config path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
		return nil
	},
}

func showConfig(cmd *cobra.Command) error {
	c, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)
	values := c.Values()
	for _, k := range config.Keys() {
		fmt.Fprintf(out, "%s %s\n", padRight(k, 10), values[k])
	}
	fmt.Fprintf(out, "%s\n", faint.Sprintf("# %s", config.GetConfigPath()))
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
