// ABOUTME: Entry point for the intervals CLI.
// ABOUTME: Invokes the root Cobra command and reports errors on stderr.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
