package journal

import (
	"github.com/spf13/cobra"
)

// Cmd is the journal command group
var Cmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and read journal entries",
	Long:  `One entry per day. Mood is derived from the text unless you set it yourself.`,
}

func init() {
	Cmd.AddCommand(writeCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(listCmd)
}
