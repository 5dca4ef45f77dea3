package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/tracking/application/commands"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [habit-id]",
	Short: "Archive a habit",
	Long:  `Archive a habit. Its history stays, but it leaves the daily list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ArchiveHabitHandler == nil {
			fmt.Println("Habit archiving requires a database connection.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		err = app.ArchiveHabitHandler.Handle(cmd.Context(), commands.ArchiveHabitCommand{
			HabitID: habitID,
			UserID:  app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}

		fmt.Println("Habit archived.")
		return nil
	},
}
