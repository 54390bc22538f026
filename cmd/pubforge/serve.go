package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pubforge/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the publication API server",
	Long: `Start the pubforge HTTP server.

The server will:
  - Load configuration from pubforge.yaml (or --config)
  - Or load configuration from PUBFORGE_* environment variables
  - Parse every publication type schema under the content directory
  - Build the SQLite listing index from the documents on disk
  - Watch the workspace for changes and reload automatically

Environment variables (for Docker deployments):
  PUBFORGE_CONTENT_DIR     - Publication workspace root (default: content)
  PUBFORGE_MEDIA_DIR       - Media root (default: media)
  PUBFORGE_TAGS_FILE       - Tag vocabulary file (default: tags.yml)
  PUBFORGE_INDEX_PATH      - Index database path (default: pubforge.db)
  PUBFORGE_SERVER_PORT     - Server port (default: 8080)
  PUBFORGE_LOG_LEVEL       - Log level: debug, info, warn, error

Examples:
  pubforge serve
  pubforge serve --config /etc/pubforge/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{
		ConfigPath: cfgFile,
		WithServer: true,
	})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	return app.Run()
}
