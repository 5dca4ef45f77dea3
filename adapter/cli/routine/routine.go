package routine

import (
	"github.com/spf13/cobra"
)

// Cmd is the routine command group
var Cmd = &cobra.Command{
	Use:   "routine",
	Short: "Manage routines",
	Long:  `Create, list, and complete multi-step routines like morning rituals or skincare.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(doneCmd)
}
