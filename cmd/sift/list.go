package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift/pkg/core"
)

var (
	listJSON       bool
	listArchived   bool
	listSearchTerm string
	listTags       []string
	listCategories []string
	listStatuses   []string
	listPriorities []string
	listTask       string
	listList       string
	listIdea       string
	listDue        string
	listURL        string
	listDueOn      string
	listSortField  string
	listDesc       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes matching the simple filters",
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

		state, err := buildFilterState()
		if err != nil {
			fatal("Error building filters", err)
		}

		field := settings.defaultSort
		if listSortField != "" {
			field, err = core.ParseSortField(listSortField)
			if err != nil {
				fatal("Error parsing sort field", err)
			}
		}
		dir := core.Ascending
		if listDesc {
			dir = core.Descending
		}

		notes, err := service.FilterNotes(context.Background(), settings.user,
			listArchived, state, listSearchTerm, field, dir)
		if err != nil {
			fatal("Error listing notes", err)
		}

		printNotes(notes, listJSON)
	},
}

func buildFilterState() (core.FilterState, error) {
	state := core.FilterState{
		Tags:       listTags,
		Categories: listCategories,
		Statuses:   listStatuses,
		Priorities: listPriorities,
	}

	var err error
	if state.IsTask, err = parseTriState(listTask); err != nil {
		return state, fmt.Errorf("--task: %w", err)
	}
	if state.IsList, err = parseTriState(listList); err != nil {
		return state, fmt.Errorf("--list: %w", err)
	}
	if state.IsIdea, err = parseTriState(listIdea); err != nil {
		return state, fmt.Errorf("--idea: %w", err)
	}
	if state.DueDate, err = parsePresence(listDue); err != nil {
		return state, fmt.Errorf("--due: %w", err)
	}
	if state.URL, err = parsePresence(listURL); err != nil {
		return state, fmt.Errorf("--url: %w", err)
	}
	if listDueOn != "" {
		day, err := time.Parse("2006-01-02", listDueOn)
		if err != nil {
			return state, fmt.Errorf("--due-on: %w", err)
		}
		state.DueOn = &day
	}
	return state, nil
}

// parseTriState maps ""/true/false to the nil/true/false filter tri-state.
func parseTriState(s string) (*bool, error) {
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "true", "yes":
		v := true
		return &v, nil
	case "false", "no":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("expected true or false, got %q", s)
	}
}

func parsePresence(s string) (core.Presence, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return core.PresenceAny, nil
	case "with":
		return core.PresenceWith, nil
	case "without":
		return core.PresenceWithout, nil
	default:
		return core.PresenceAny, fmt.Errorf("expected with, without or both, got %q", s)
	}
}

func printNotes(notes []core.Note, asJSON bool) {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(notes); err != nil {
			fatal("Error encoding JSON", err)
		}
		return
	}

	for _, n := range notes {
		line := n.ID
		if n.Title != "" {
			line += " - " + n.Title
		}
		if len(n.Tags) > 0 {
			line += " [" + strings.Join(n.Tags, ", ") + "]"
		}
		if n.DueDate != nil {
			line += " due " + n.DueDate.Format("2006-01-02")
		}
		fmt.Println(line)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "List the archived partition")
	listCmd.Flags().StringVarP(&listSearchTerm, "search", "s", "", "Substring search over title, content and URL")
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Filter by tag (any selected tag matches)")
	listCmd.Flags().StringSliceVar(&listCategories, "category", nil, "Filter by category")
	listCmd.Flags().StringSliceVar(&listStatuses, "status", nil, "Filter by status")
	listCmd.Flags().StringSliceVar(&listPriorities, "priority", nil, "Filter by priority")
	listCmd.Flags().StringVar(&listTask, "task", "", "Require is_task to be true or false")
	listCmd.Flags().StringVar(&listList, "list", "", "Require is_list to be true or false")
	listCmd.Flags().StringVar(&listIdea, "idea", "", "Require is_idea to be true or false")
	listCmd.Flags().StringVar(&listDue, "due", "", "Require a due date: with, without or both")
	listCmd.Flags().StringVar(&listURL, "url", "", "Require a URL: with, without or both")
	listCmd.Flags().StringVar(&listDueOn, "due-on", "", "Due date equals this calendar day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listSortField, "sort", "", "Sort field: title, status, due_date, created_at, updated_at")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
}
