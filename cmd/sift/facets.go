package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	facetsJSON     bool
	facetsArchived bool
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Show the distinct facet values present in the notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := resolveSettings()
		if err != nil {
			fatal("Error resolving settings", err)
		}

		service, err := buildService(settings)
		if err != nil {
			fatal("Error initializing sift", err)
		}
		defer service.Close()

		opts, err := service.FacetOptions(context.Background(), settings.user, facetsArchived)
		if err != nil {
			fatal("Error computing facets", err)
		}

		if facetsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(opts); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		printFacet("tags", opts.Tags)
		printFacet("categories", opts.Categories)
		printFacet("types", opts.Types)
		printFacet("priorities", opts.Priorities)
		printFacet("importances", opts.Importances)
		printFacet("statuses", opts.Statuses)
	},
}

func printFacet(name string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Printf("%s: %s\n", name, strings.Join(values, ", "))
}

func init() {
	rootCmd.AddCommand(facetsCmd)
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "Output in JSON format")
	facetsCmd.Flags().BoolVar(&facetsArchived, "archived", false, "Use the archived partition")
}
