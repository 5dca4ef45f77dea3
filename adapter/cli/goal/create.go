package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/goals/application/commands"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	description string
	targetDate  string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new goal",
	Long: `Create a goal, optionally with a target date.

Examples:
  tend goal create "Run a half marathon" --by 2025-10-01
  tend goal create "Read 12 books" -d "One per month"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateGoalHandler == nil {
			fmt.Println("Goal creation requires a database connection.")
			return nil
		}

		createCmd := commands.CreateGoalCommand{
			UserID:      app.CurrentUserID,
			Title:       args[0],
			Description: description,
		}
		if targetDate != "" {
			date, err := sharedDomain.ParseDate(targetDate)
			if err != nil {
				return fmt.Errorf("invalid target date: %w", err)
			}
			createCmd.TargetDate = date
		}

		result, err := app.CreateGoalHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		fmt.Printf("Created goal: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.GoalID)
		if targetDate != "" {
			fmt.Printf("  Target: %s\n", targetDate)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&description, "description", "d", "", "goal description")
	createCmd.Flags().StringVar(&targetDate, "by", "", "target date (YYYY-MM-DD)")
}
