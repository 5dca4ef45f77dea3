package routine

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/tracking/application/commands"
	"github.com/tendhq/tend/internal/tracking/domain"
)

var (
	routineType string
	steps       []string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new routine",
	Long: `Create a multi-step routine.

Types:
  morning   - Start-of-day ritual
  evening   - Wind-down ritual
  skincare  - Skincare routine (feeds the glow tracker)
  custom    - Anything else

Examples:
  tend routine create "Evening skincare" -t skincare -s cleanse -s tone -s moisturize
  tend routine create "Morning" -t morning -s stretch -s coffee -s plan`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateRoutineHandler == nil {
			fmt.Println("Routine creation requires a database connection.")
			return nil
		}

		result, err := app.CreateRoutineHandler.Handle(cmd.Context(), commands.CreateRoutineCommand{
			UserID: app.CurrentUserID,
			Name:   args[0],
			Type:   domain.RoutineType(routineType),
			Steps:  steps,
		})
		if err != nil {
			return fmt.Errorf("failed to create routine: %w", err)
		}

		fmt.Printf("Created routine: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.RoutineID)
		fmt.Printf("  Type: %s\n", routineType)
		for i, step := range steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&routineType, "type", "t", "custom", "routine type (morning, evening, skincare, custom)")
	createCmd.Flags().StringArrayVarP(&steps, "step", "s", nil, "routine step (repeatable)")
}
