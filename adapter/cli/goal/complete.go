package goal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/goals/application/commands"
)

var completeCmd = &cobra.Command{
	Use:     "complete [goal-id]",
	Short:   "Mark a goal complete",
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteGoalHandler == nil {
			fmt.Println("Goal tracking requires a database connection.")
			return nil
		}

		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal ID: %w", err)
		}

		err = app.CompleteGoalHandler.Handle(cmd.Context(), commands.CompleteGoalCommand{
			GoalID: goalID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to complete goal: %w", err)
		}

		fmt.Println("Goal completed. Nice.")
		return nil
	},
}
