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

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pubforge",
	Short: "Typed publication workspace with schemas, validation, and seeding",
	Long: `Pubforge manages a workspace of typed markdown publications.

Each publication type declares a schema of typed fields. Documents are
stored as markdown files with YAML front matter, validated against their
schema, indexed into SQLite for sorted listings, and can be generated in
bulk with the seeder.

Quick start:
  pubforge types            # List publication types in the workspace
  pubforge seed posts 10    # Generate 10 random posts
  pubforge serve            # Start the HTTP API

Management:
  pubforge validate         # Validate every document in the workspace
  pubforge tags             # Show the tag vocabulary`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "pubforge.yaml", "config file path")
}
