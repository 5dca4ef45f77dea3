package goal

import (
	"github.com/spf13/cobra"
)

// Cmd is the goal command group
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	Long:  `Create goals, track progress, and mark them complete.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(progressCmd)
	Cmd.AddCommand(completeCmd)
}
