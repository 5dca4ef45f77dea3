package goal

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/goals/application/commands"
)

var progressCmd = &cobra.Command{
	Use:   "progress [goal-id] [percent]",
	Short: "Update goal progress",
	Long: `Set a goal's progress to a percentage between 0 and 100.
Progress and completion are independent: 100% does not auto-complete.

Examples:
  tend goal progress 4f8b6c1e-... 60`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateProgressHandler == nil {
			fmt.Println("Goal tracking requires a database connection.")
			return nil
		}

		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal ID: %w", err)
		}
		percent, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid percentage: %w", err)
		}

		err = app.UpdateProgressHandler.Handle(cmd.Context(), commands.UpdateProgressCommand{
			GoalID:   goalID,
			UserID:   app.CurrentUserID,
			Progress: percent,
		})
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		fmt.Printf("Progress set to %d%%.\n", percent)
		return nil
	},
}
