package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/pubforge/bootstrap"
	"github.com/artpar/pubforge/core/formatter"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the tag vocabulary",
	RunE:  runTags,
}

var tagsOutputFormat string

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().StringVarP(&tagsOutputFormat, "output", "o", "table", "output format: table, json, yaml")
}

func runTags(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{ConfigPath: cfgFile})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer app.Shutdown()

	vocab, err := app.Tags.Load()
	if err != nil {
		return fmt.Errorf("load tag vocabulary: %w", err)
	}

	f, ok := formatter.Get(tagsOutputFormat)
	if !ok {
		return fmt.Errorf("unknown output format %q, have %v", tagsOutputFormat, formatter.List())
	}

	groups := vocab.GroupNames()
	records := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		records = append(records, map[string]any{
			"group":  g,
			"values": vocab.ValuesFor(g),
		})
	}
	return f.FormatList(os.Stdout, []string{"group", "values"}, records, formatter.Options{})
}
