package journal

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/journal/application/queries"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var showDate string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one day's entry",
	Long: `Show the journal entry for a day (default today).

Examples:
  tend journal show
  tend journal show --date 2025-06-14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetEntryHandler == nil {
			fmt.Println("Journaling requires a database connection.")
			return nil
		}

		date := sharedDomain.Today()
		if showDate != "" {
			parsed, err := sharedDomain.ParseDate(showDate)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			date = parsed
		}

		entry, err := app.GetEntryHandler.Handle(cmd.Context(), queries.GetEntryQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			if errors.Is(err, queries.ErrEntryNotFound) {
				fmt.Printf("No entry for %s.\n", date)
				return nil
			}
			return fmt.Errorf("failed to read entry: %w", err)
		}

		printEntry(entry, true)
		return nil
	},
}

func printEntry(entry *queries.EntryDTO, full bool) {
	fmt.Printf("%s  mood: %s", entry.Date, entry.Mood)
	if entry.ManualMood {
		fmt.Printf(" (set by you)")
	}
	fmt.Println()
	if full {
		fmt.Printf("  %s\n", entry.Content)
	}
	if entry.Sentiment != nil {
		fmt.Printf("  sentiment: %s (score %d)\n", entry.Sentiment.Label, entry.Sentiment.Score)
		if len(entry.Sentiment.Emotions) > 0 {
			fmt.Printf("  emotions: %v\n", entry.Sentiment.Emotions)
		}
	}
	if entry.HabitsTotal > 0 {
		fmt.Printf("  habits that day: %d/%d done\n", entry.HabitsDone, entry.HabitsTotal)
	}
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "entry date (YYYY-MM-DD, default today)")
}
