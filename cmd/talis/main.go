// Package main is the entry point for the talis command
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/talis/cmd/talis/client"
)

var rootCmd = &cobra.Command{
	Use:   "talis",
	Short: "Talis multi-roller dice",
	Long: `Talis rolls Shadowrun pools, d6 pools, Daggerheart duality dice,
polyhedral dice and coins. Roller configuration is persisted between runs.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	bindGlobalFlags(rootCmd)

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(quickButtonCmd)
	rootCmd.AddCommand(coinTypeCmd)
	rootCmd.AddCommand(diceTypeCmd)
	rootCmd.AddCommand(clearHistoryCmd)
	rootCmd.AddCommand(clearAllCmd)
	rootCmd.AddCommand(checkStorageCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
