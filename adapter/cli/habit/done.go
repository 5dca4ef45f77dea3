package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/tracking/application/commands"
)

var doneDate string

var doneCmd = &cobra.Command{
	Use:   "done [habit-id]",
	Short: "Mark a habit done",
	Long: `Mark a habit as completed for today (or a given date).

Examples:
  tend habit done 4f8b6c1e-...
  tend habit done 4f8b6c1e-... --date 2025-06-14`,
	Aliases: []string{"log", "complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogCompletionHandler == nil {
			fmt.Println("Habit logging requires a database connection.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		logCmd := commands.LogCompletionCommand{
			HabitID: habitID,
			UserID:  app.CurrentUserID,
		}
		if doneDate != "" {
			date, err := sharedDomain.ParseDate(doneDate)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			logCmd.Date = date
		}

		result, err := app.LogCompletionHandler.Handle(cmd.Context(), logCmd)
		if err != nil {
			return fmt.Errorf("failed to log completion: %w", err)
		}

		fmt.Printf("Done!\n")
		fmt.Printf("  Streak: %d\n", result.Streak)
		fmt.Printf("  Total completions: %d\n", result.TotalDone)
		return nil
	},
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "completion date (YYYY-MM-DD, default today)")
}
