package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Compose and generate pychain smart contracts",
	Long: `Forge composes a base archetype and feature modules into pychain
contract source, resolving module conflicts and running security rules
over the composition.

Quick start:
  forge generate --archetype token --param name=MyToken --param symbol=MTK --module mintable --module ownable
  forge serve       # Start the HTTP API

Catalog:
  forge catalog archetypes
  forge catalog modules --archetype token`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "forge.yaml", "config file path")
}
