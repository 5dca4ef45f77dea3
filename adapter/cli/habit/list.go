package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/tracking/application/queries"
)

var (
	showArchived  bool
	habitCategory string
	habitSortBy   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long: `List habits with their streaks and 30-day completion rates.

Examples:
  tend habit list
  tend habit list --category fitness
  tend habit list --sort streak
  tend habit list --archived`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListHabitsHandler == nil {
			fmt.Println("Habit listing requires a database connection.")
			return nil
		}

		query := queries.ListHabitsQuery{
			UserID:          app.CurrentUserID,
			IncludeArchived: showArchived,
			Category:        habitCategory,
			SortBy:          habitSortBy,
		}

		habits, err := app.ListHabitsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		if len(habits) == 0 {
			fmt.Println("No habits yet. Create one with: tend habit create \"...\"")
			return nil
		}

		for _, h := range habits {
			mark := " "
			if h.CompletedToday {
				mark = "x"
			}
			fmt.Printf("[%s] %s", mark, h.Name)
			if h.Category != "" {
				fmt.Printf("  (%s)", h.Category)
			}
			if h.IsArchived {
				fmt.Printf("  [archived]")
			}
			fmt.Println()
			fmt.Printf("      streak %d | best %d | rate %d%% | done %d times\n",
				h.Streak, h.LongestStreak, h.CompletionRate, h.TotalDone)
			fmt.Printf("      id: %s\n", h.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showArchived, "archived", "a", false, "include archived habits")
	listCmd.Flags().StringVarP(&habitCategory, "category", "c", "", "filter by category")
	listCmd.Flags().StringVar(&habitSortBy, "sort", "", "sort by field (streak, name, created_at)")
}
