package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift/pkg/core"
)

var (
	searchJSON     bool
	searchArchived bool
	searchAny      bool
	searchWhere    []string
	searchSort     string
	searchDesc     bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run an advanced search over the notes",
	Long: `Run an advanced multi-condition search. Each --where takes a single
condition of the form "field operator value", e.g.:

  sift search --where "title contains report" --where "tags includes work"

Conditions combine conjunctively by default; --any switches to
at-least-one-matches.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := resolveSettings()
		if err != nil {
			fatal("Error resolving settings", err)
		}

		queries, err := parseConditions(searchWhere)
		if err != nil {
			fatal("Error parsing conditions", err)
		}
		if result := core.ValidateSearch(queries); !result.Valid {
			fatal("Invalid search", fmt.Errorf("%s", strings.Join(result.Errors, "; ")))
		}

		service, err := buildService(settings)
		if err != nil {
			fatal("Error initializing sift", err)
		}
		defer service.Close()

		match := core.MatchAll
		if searchAny {
			match = core.MatchAny
		}

		field := settings.defaultSort
		if searchSort != "" {
			field, err = core.ParseSortField(searchSort)
			if err != nil {
				fatal("Error parsing sort field", err)
			}
		}
		dir := core.Ascending
		if searchDesc {
			dir = core.Descending
		}

		notes, err := service.SearchNotes(context.Background(), settings.user,
			searchArchived, core.Search{Queries: queries, Match: match}, field, dir)
		if err != nil {
			fatal("Error searching notes", err)
		}

		printNotes(notes, searchJSON)
	},
}

// parseConditions parses "field operator value" strings. The value may
// contain spaces; only the first two tokens are structural.
func parseConditions(where []string) ([]core.Condition, error) {
	var queries []core.Condition
	for _, w := range where {
		parts := strings.SplitN(strings.TrimSpace(w), " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("condition %q: expected \"field operator value\"", w)
		}
		field, err := core.ParseQueryField(parts[0])
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", w, err)
		}
		op, err := core.ParseOperator(parts[1])
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", w, err)
		}
		queries = append(queries, core.Condition{Field: field, Operator: op, Value: parts[2]})
	}
	return queries, nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().BoolVar(&searchArchived, "archived", false, "Search the archived partition")
	searchCmd.Flags().BoolVar(&searchAny, "any", false, "Match notes satisfying at least one condition")
	searchCmd.Flags().StringArrayVar(&searchWhere, "where", nil, "Condition \"field operator value\" (repeatable)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort field")
	searchCmd.Flags().BoolVar(&searchDesc, "desc", false, "Sort descending")
}
