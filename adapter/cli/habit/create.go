package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/tracking/application/commands"
)

var category string

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new habit",
	Long: `Create a new daily habit to track.

Categories feed the life balance score. Common ones:
  fitness, nutrition, sleep, mindfulness, learning,
  career, social, family

Examples:
  tend habit create "Morning run" -c fitness
  tend habit create "Read 20 pages" -c learning`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateHabitHandler == nil {
			fmt.Println("Habit creation requires a database connection.")
			return nil
		}

		createCmd := commands.CreateHabitCommand{
			UserID:   app.CurrentUserID,
			Name:     args[0],
			Category: category,
		}

		result, err := app.CreateHabitHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		fmt.Printf("Created habit: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.HabitID)
		if category != "" {
			fmt.Printf("  Category: %s\n", category)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&category, "category", "c", "", "life area category (fitness, learning, ...)")
}
