package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/artpar/pubforge/bootstrap"
)

var seedCmd = &cobra.Command{
	Use:   "seed <type> <count>",
	Short: "Generate random publications for a type",
	Long: `Generate random publications for a publication type.

Each generated document gets random field values matching the schema:
lorem text for strings, random numbers, picsum URLs for media fields,
and values drawn from the tag vocabulary for tag fields. Filenames are
derived from the canonical field value.

Examples:
  pubforge seed posts 10
  pubforge seed reviews 5 --config /etc/pubforge/config.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[1])
	if err != nil || count < 1 {
		return fmt.Errorf("count must be a positive integer, got %q", args[1])
	}

	app, err := bootstrap.New(bootstrap.Options{ConfigPath: cfgFile})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer app.Shutdown()

	pt, ok := app.Registry.Get(args[0])
	if !ok {
		pt, ok = app.Registry.GetByDirectory(args[0])
	}
	if !ok {
		return fmt.Errorf("unknown publication type %q", args[0])
	}

	docs, err := app.Seeder.Seed(pt, count)
	if err != nil {
		if app.Metrics != nil {
			app.Metrics.SeedFailures.WithLabelValues(pt.Name).Inc()
		}
		return fmt.Errorf("seeding failed: %w", err)
	}
	if app.Metrics != nil {
		app.Metrics.PublicationsSeeded.WithLabelValues(pt.Name).Add(float64(len(docs)))
	}

	ctx := context.Background()
	for _, doc := range docs {
		if _, err := app.Index.Upsert(ctx, pt, doc); err != nil {
			return fmt.Errorf("indexing %s: %w", doc.Identifier, err)
		}
		fmt.Println(doc.Identifier)
	}

	fmt.Printf("\nSeeded %d publications of type %s.\n", len(docs), pt.Name)
	return nil
}
