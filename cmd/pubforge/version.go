package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pubforge/bootstrap"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pubforge %s\n", bootstrap.Version)
		if bootstrap.Commit != "" {
			fmt.Printf("  commit:  %s\n", bootstrap.Commit)
		}
		if bootstrap.Date != "" {
			fmt.Printf("  built:   %s\n", bootstrap.Date)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
