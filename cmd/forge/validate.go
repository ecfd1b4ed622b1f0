package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pychain/forge/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}
		fmt.Println("Configuration valid")
		fmt.Printf("  Listen: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		if cfg.Database.Path != "" {
			fmt.Printf("  History: %s\n", cfg.Database.Path)
		} else {
			fmt.Println("  History: in-memory")
		}
		fmt.Printf("  Auth: %v\n", cfg.Auth.Enabled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
