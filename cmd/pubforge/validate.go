package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pubforge/bootstrap"
)

var validateCmd = &cobra.Command{
	Use:   "validate [type...]",
	Short: "Validate the workspace",
	Long: `Validate the pubforge workspace.

Checks:
  - The tag vocabulary file parses and has the expected shape
  - Every schema file parses and is structurally valid
  - Every document's front matter passes its type's validation rules

With type arguments, only those types' documents are checked.

Examples:
  pubforge validate
  pubforge validate posts reviews`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{ConfigPath: cfgFile})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer app.Shutdown()

	if err := app.Tags.Validate(); err != nil {
		fmt.Printf("  %s Tag vocabulary\n      %v\n", crossMark, err)
	} else {
		fmt.Printf("  %s Tag vocabulary\n", checkMark)
	}

	wanted := make(map[string]bool, len(args))
	for _, a := range args {
		wanted[a] = true
	}

	invalid := 0
	for _, pt := range app.Registry.List() {
		if len(wanted) > 0 && !wanted[pt.Name] && !wanted[pt.Directory()] {
			continue
		}

		ids, err := app.Docs.ListForType(pt.Directory())
		if err != nil {
			return fmt.Errorf("list documents for %s: %w", pt.Name, err)
		}

		fmt.Printf("\n%s (%d documents)\n", pt.Name, len(ids))
		for _, id := range ids {
			doc, err := app.Docs.Load(id)
			if err != nil {
				fmt.Printf("  %s %s\n      %v\n", crossMark, id, err)
				invalid++
				continue
			}

			result, err := app.Validator.ValidateRecord(pt, doc.Matter)
			if err != nil {
				fmt.Printf("  %s %s\n      %v\n", crossMark, id, err)
				invalid++
				continue
			}
			if !result.Valid {
				fmt.Printf("  %s %s\n", crossMark, id)
				for _, e := range result.Errors {
					fmt.Printf("      %s: %s\n", e.Field, e.Message)
				}
				invalid++
				continue
			}
			fmt.Printf("  %s %s\n", checkMark, id)
		}
	}

	fmt.Println()
	if invalid > 0 {
		return fmt.Errorf("%d invalid documents", invalid)
	}
	fmt.Println("Workspace is valid.")
	return nil
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
