package journal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/journal/application/queries"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	listFrom  string
	listTo    string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recent entries",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListEntriesHandler == nil {
			fmt.Println("Journaling requires a database connection.")
			return nil
		}

		query := queries.ListEntriesQuery{
			UserID: app.CurrentUserID,
			Limit:  listLimit,
		}
		if listFrom != "" {
			from, err := sharedDomain.ParseDate(listFrom)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			query.From = from
		}
		if listTo != "" {
			to, err := sharedDomain.ParseDate(listTo)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}
			query.To = to
		}

		entries, err := app.ListEntriesHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries yet. Write one with: tend journal write \"...\"")
			return nil
		}
		for i := range entries {
			printEntry(&entries[i], false)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "end date (YYYY-MM-DD)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 14, "max entries to show")
}
