package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	journalQueries "github.com/tendhq/tend/internal/journal/application/queries"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/suggestions"
	trackingQueries "github.com/tendhq/tend/internal/tracking/application/queries"
)

const suggestTrendDays = 14

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get a suggestion for right now",
	Long: `Get a suggestion based on your habits, mood trend, and time of day.
Falls back to a built-in suggestion when the service is unreachable.

Examples:
  tend suggest`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SuggestionClient == nil {
			fmt.Println("Suggestions require a database connection.")
			return nil
		}

		ctx := cmd.Context()
		req := suggestions.Request{
			MoodTrend: "neutral",
			TimeOfDay: suggestions.TimeOfDay(time.Now()),
		}

		habits, err := app.ListHabitsHandler.Handle(ctx, trackingQueries.ListHabitsQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		for _, h := range habits {
			req.Habits = append(req.Habits, suggestions.HabitContext{
				Name:             h.Name,
				Category:         h.Category,
				CompletionRate:   h.CompletionRate,
				CurrentStreak:    h.Streak,
				IsCompletedToday: h.CompletedToday,
			})
		}

		today := sharedDomain.Today()
		entries, err := app.ListEntriesHandler.Handle(ctx, journalQueries.ListEntriesQuery{
			UserID: app.CurrentUserID,
			From:   today.AddDays(-suggestTrendDays),
			To:     today,
		})
		if err == nil {
			req.MoodTrend = moodTrend(entries)
		}

		entry, err := app.GetEntryHandler.Handle(ctx, journalQueries.GetEntryQuery{
			UserID: app.CurrentUserID,
			Date:   today,
		})
		if err != nil && !errors.Is(err, journalQueries.ErrEntryNotFound) {
			return fmt.Errorf("failed to read today's entry: %w", err)
		}
		if entry != nil {
			req.JournalMood = entry.Mood
		}

		suggestion := app.SuggestionClient.Fetch(ctx, req)

		fmt.Println(suggestion.Suggestion)
		fmt.Printf("\n%s\n", suggestion.Affirmation)
		if suggestion.Tip != "" {
			fmt.Printf("\nTip: %s\n", suggestion.Tip)
		}
		return nil
	},
}

// moodTrend collapses recent sentiment scores into the three-way label
// the suggestion contract expects.
func moodTrend(entries []journalQueries.EntryDTO) string {
	sum, count := 0, 0
	for _, e := range entries {
		if e.Sentiment == nil {
			continue
		}
		sum += e.Sentiment.Score
		count++
	}
	if count == 0 {
		return "neutral"
	}
	avg := float64(sum) / float64(count)
	switch {
	case avg > 0.5:
		return "positive"
	case avg < -0.5:
		return "negative"
	default:
		return "neutral"
	}
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
