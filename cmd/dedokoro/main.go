// Package main provides the dedokoro CLI tool.
//
// Usage:
//
//	go tool dedokoro <command> [arguments]
//
// Commands:
//
//	flatten     Print the flattened keys and values of configuration files
//	check       Validate configuration files
//	watch       Reload a configuration file on change and print the result
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dedokoro",
	Short:         "Inspect configuration files and the origin of every value",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newFlattenCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newWatchCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
