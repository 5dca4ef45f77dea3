package domain

import (
	"math"
	"time"

	shared "github.com/tendhq/tend/internal/shared/domain"
)

// DefaultRateWindow is the trailing window, in days, used for completion
// rates when the caller does not pick one.
const DefaultRateWindow = 30

// DayProgress summarizes completion across all activities for one day.
type DayProgress struct {
	Date       shared.Date
	Completed  int
	Total      int
	Percentage int
}

// CompletionRate returns the integer percentage of the trailing window
// (today inclusive, walking backward) present in the date set. The window
// is fixed regardless of when the activity was created; an activity
// created mid-window reports a deflated rate, which is intended.
func CompletionRate(dates shared.DateSet, today shared.Date, window int) int {
	if window <= 0 {
		return 0
	}

	completed := 0
	for i := 0; i < window; i++ {
		if dates.Contains(today.AddDays(-i)) {
			completed++
		}
	}

	return roundPercent(float64(completed) / float64(window))
}

// DailyProgress returns the fraction of activities completed on the given
// day. Zero activities yields percentage 0, never a division error.
func DailyProgress(activities []Activity, date shared.Date) DayProgress {
	p := DayProgress{Date: date, Total: len(activities)}
	for _, a := range activities {
		if a.Completed.Contains(date) {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = roundPercent(float64(p.Completed) / float64(p.Total))
	}
	return p
}

// MonthlyProgress returns a DayProgress for every day of the given month.
func MonthlyProgress(activities []Activity, year int, month time.Month) []DayProgress {
	first := shared.NewDate(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))

	out := make([]DayProgress, 0, 31)
	for d := first; d.Time().Month() == month; d = d.AddDays(1) {
		out = append(out, DailyProgress(activities, d))
	}
	return out
}

// roundPercent converts a 0..1 ratio to the nearest integer percent.
func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
