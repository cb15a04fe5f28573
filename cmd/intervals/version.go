// ABOUTME: CLI command that prints the build version.
// ABOUTME: The version is stamped at build time with -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "intervals %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
