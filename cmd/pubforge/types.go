package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/pubforge/bootstrap"
	"github.com/artpar/pubforge/core/formatter"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List publication types in the workspace",
	RunE:  runTypes,
}

var outputFormat string

func init() {
	rootCmd.AddCommand(typesCmd)

	typesCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
}

func runTypes(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{ConfigPath: cfgFile})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer app.Shutdown()

	f, ok := formatter.Get(outputFormat)
	if !ok {
		return fmt.Errorf("unknown output format %q, have %v", outputFormat, formatter.List())
	}

	types := app.Registry.List()
	records := make([]map[string]any, 0, len(types))
	for _, t := range types {
		sort := t.SortField + " desc"
		if t.SortAscending {
			sort = t.SortField + " asc"
		}
		records = append(records, map[string]any{
			"name":      t.Name,
			"directory": t.Directory(),
			"fields":    len(t.Fields),
			"canonical": t.CanonicalField,
			"sort":      sort,
			"page-size": t.PageSize,
		})
	}

	columns := []string{"name", "directory", "fields", "canonical", "sort", "page-size"}
	return f.FormatList(os.Stdout, columns, records, formatter.Options{})
}
