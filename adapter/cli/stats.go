package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/internal/analytics/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your dashboard",
	Long: `Show the full dashboard: today's progress, habit streaks, mood trend,
life balance, and achievements. Everything is derived from live data.

Examples:
  tend stats`,
	Aliases: []string{"dashboard"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.DashboardService == nil {
			fmt.Println("Stats require a database connection.")
			return nil
		}

		view, err := app.DashboardService.Dashboard(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		for _, glow := range view.NewGlow {
			fmt.Printf("* %s - %s\n", glow.Title, glow.Message)
		}
		if len(view.NewGlow) > 0 {
			fmt.Println()
		}

		fmt.Printf("Today: %d/%d habits (%d%%)\n",
			view.Today.Completed, view.Today.Total, view.Today.Percentage)

		if len(view.Habits) > 0 {
			fmt.Println("\nHabits:")
			for _, h := range view.Habits {
				fmt.Printf("  %-24s streak %d | best %d | rate %d%%\n",
					h.Name, h.Streak, h.LongestStreak, h.CompletionRate)
			}
		}

		if len(view.MoodTrend) > 0 {
			fmt.Println("\nMood trend:")
			for _, p := range view.MoodTrend {
				fmt.Printf("  %s  %-10s (%+d)\n", p.Date, p.Mood, p.Score)
			}
		}

		if view.Correlation != nil {
			fmt.Println("\nHabits and mood:")
			fmt.Printf("  high-completion days avg mood %.1f, low-completion days %.1f (%d days)\n",
				view.Correlation.HighCompletionAvgMood,
				view.Correlation.LowCompletionAvgMood,
				view.Correlation.DataPoints)
			for _, insight := range view.Correlation.Insights {
				fmt.Printf("  %s\n", insight)
			}
		}

		fmt.Printf("\nLife balance: %d/100 (stability %d)\n",
			view.Balance.OverallScore, view.Balance.StabilityScore)
		for _, area := range view.Balance.Areas {
			fmt.Printf("  %-14s %3d  %s\n", area.Area, area.Score, trendArrow(area.Trend))
		}
		for _, insight := range view.Balance.Insights {
			fmt.Printf("  %s\n", insight)
		}

		unlocked := 0
		for _, a := range view.Achievements {
			if a.Unlocked {
				unlocked++
			}
		}
		fmt.Printf("\nAchievements: %d/%d unlocked | %d points\n",
			unlocked, len(view.Achievements), view.TotalPoints)
		for _, a := range view.Achievements {
			mark := " "
			if a.Unlocked {
				mark = "x"
			}
			fmt.Printf("  [%s] %-20s %s", mark, a.Title, strings.ToLower(string(a.Tier)))
			if !a.Unlocked {
				fmt.Printf("  (%d%%)", a.Progress)
			}
			fmt.Println()
		}

		return nil
	},
}

func trendArrow(t domain.Trend) string {
	switch t {
	case domain.TrendUp:
		return "up"
	case domain.TrendDown:
		return "down"
	default:
		return "steady"
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
