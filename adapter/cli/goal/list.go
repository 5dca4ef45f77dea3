package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/goals/application/queries"
)

var includeCompleted bool

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List goals",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListGoalsHandler == nil {
			fmt.Println("Goal tracking requires a database connection.")
			return nil
		}

		goals, err := app.ListGoalsHandler.Handle(cmd.Context(), queries.ListGoalsQuery{
			UserID:           app.CurrentUserID,
			IncludeCompleted: includeCompleted,
		})
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}

		if len(goals) == 0 {
			fmt.Println("No goals yet. Create one with: tend goal create \"...\"")
			return nil
		}

		for _, g := range goals {
			mark := " "
			if g.IsCompleted {
				mark = "x"
			}
			fmt.Printf("[%s] %s (%d%%)", mark, g.Title, g.Progress)
			if g.IsOverdue {
				fmt.Printf("  OVERDUE")
			}
			fmt.Println()
			if g.Description != "" {
				fmt.Printf("      %s\n", g.Description)
			}
			if g.TargetDate != "" {
				fmt.Printf("      target: %s\n", g.TargetDate)
			}
			fmt.Printf("      id: %s\n", g.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&includeCompleted, "all", "a", false, "include completed goals")
}
