package journal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	"github.com/tendhq/tend/internal/journal/application/commands"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	writeDate string
	writeMood string
)

var writeCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write today's entry",
	Long: `Write (or rewrite) the journal entry for a day. Mood is derived
from the text unless --mood pins it explicitly.

Moods: great, good, okay, low, rough

Examples:
  tend journal write "Slept well, long walk, feeling steady."
  tend journal write "Rough day." --mood low
  tend journal write "Catching up." --date 2025-06-14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SaveEntryHandler == nil {
			fmt.Println("Journaling requires a database connection.")
			return nil
		}

		saveCmd := commands.SaveEntryCommand{
			UserID:  app.CurrentUserID,
			Content: args[0],
			Mood:    analyticsDomain.Mood(writeMood),
		}
		if writeDate != "" {
			date, err := sharedDomain.ParseDate(writeDate)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			saveCmd.Date = date
		} else {
			saveCmd.Date = sharedDomain.Today()
		}

		result, err := app.SaveEntryHandler.Handle(cmd.Context(), saveCmd)
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		fmt.Printf("Entry saved for %s\n", saveCmd.Date)
		fmt.Printf("  Mood: %s\n", result.Mood)
		fmt.Printf("  Sentiment: %s (score %d, %s confidence)\n",
			result.Sentiment.Label, result.Sentiment.Score, result.Sentiment.Confidence)
		if len(result.Sentiment.Emotions) > 0 {
			fmt.Printf("  Emotions: %v\n", result.Sentiment.Emotions)
		}
		return nil
	},
}

func init() {
	writeCmd.Flags().StringVar(&writeDate, "date", "", "entry date (YYYY-MM-DD, default today)")
	writeCmd.Flags().StringVarP(&writeMood, "mood", "m", "", "set mood explicitly (great, good, okay, low, rough)")
}
