package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pychain/forge/bootstrap"
	"github.com/pychain/forge/config"
)

var hotReload bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the contract generator API server",
	Long: `Start the Forge HTTP API.

The server will:
  - Load configuration from forge.yaml (or --config)
  - Or run from FORGE_* environment variables without a config file
  - Serve the catalog, selection, and generation endpoints
  - Persist generation history when database.path is configured

Environment variables:
  FORGE_SERVER_HOST     - Bind host (default: 0.0.0.0)
  FORGE_SERVER_PORT     - Bind port (default: 8080)
  FORGE_DATABASE_PATH   - SQLite path for history (default: in-memory)
  FORGE_LOG_LEVEL       - Log level: debug, info, warn, error
  FORGE_LOG_FORMAT      - Log format: json or console
  FORGE_AUTH_KEY_HASH   - bcrypt hash enabling API-key auth

Examples:
  forge serve
  forge serve --config /etc/forge/config.yaml
  forge serve --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := bootstrap.Options{Version: version}

	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	var a *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		a, err = bootstrap.NewWithHotReload(cfgFile, opts)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}
		a, err = bootstrap.New(cfg, opts)
	}
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Blocks until shutdown.
	return a.Run()
}
