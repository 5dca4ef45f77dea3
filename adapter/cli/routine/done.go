package routine

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
	Use:     "done [routine-id]",
	Short:   "Mark a routine done",
	Aliases: []string{"log", "complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogRoutineHandler == nil {
			fmt.Println("Routine logging requires a database connection.")
			return nil
		}

		routineID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid routine ID: %w", err)
		}

		logCmd := commands.LogRoutineCommand{
			RoutineID: routineID,
			UserID:    app.CurrentUserID,
		}
		if doneDate != "" {
			date, err := sharedDomain.ParseDate(doneDate)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			logCmd.Date = date
		}

		result, err := app.LogRoutineHandler.Handle(cmd.Context(), logCmd)
		if err != nil {
			return fmt.Errorf("failed to log routine: %w", err)
		}

		fmt.Printf("Routine done!\n")
		fmt.Printf("  Streak: %d\n", result.Streak)
		fmt.Printf("  Total completions: %d\n", result.TotalDone)
		return nil
	},
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "completion date (YYYY-MM-DD, default today)")
}
