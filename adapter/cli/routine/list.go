package routine

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/tracking/application/queries"
	"github.com/tendhq/tend/internal/tracking/domain"
)

var filterType string

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List routines",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListRoutinesHandler == nil {
			fmt.Println("Routine listing requires a database connection.")
			return nil
		}

		routines, err := app.ListRoutinesHandler.Handle(cmd.Context(), queries.ListRoutinesQuery{
			UserID: app.CurrentUserID,
			Type:   domain.RoutineType(filterType),
		})
		if err != nil {
			return fmt.Errorf("failed to list routines: %w", err)
		}

		if len(routines) == 0 {
			fmt.Println("No routines yet. Create one with: tend routine create \"...\"")
			return nil
		}

		for _, r := range routines {
			mark := " "
			if r.CompletedToday {
				mark = "x"
			}
			fmt.Printf("[%s] %s (%s)\n", mark, r.Name, r.Type)
			if len(r.Steps) > 0 {
				fmt.Printf("      steps: %s\n", strings.Join(r.Steps, " > "))
			}
			fmt.Printf("      streak %d | done %d times\n", r.Streak, r.TotalDone)
			fmt.Printf("      id: %s\n", r.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&filterType, "type", "t", "", "filter by type (morning, evening, skincare, custom)")
}
