package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/tendhq/tend/internal/shared/domain"
)

func TestCompletionRate(t *testing.T) {
	today := shared.MustDate("2025-06-30")

	t.Run("empty set is zero, not NaN", func(t *testing.T) {
		assert.Equal(t, 0, CompletionRate(shared.NewDateSet(), today, DefaultRateWindow))
	})

	t.Run("full window is one hundred", func(t *testing.T) {
		dates := shared.NewDateSet()
		for i := 0; i < 30; i++ {
			dates.Add(today.AddDays(-i))
		}
		assert.Equal(t, 100, CompletionRate(dates, today, 30))
	})

	t.Run("half the window rounds to fifty", func(t *testing.T) {
		dates := shared.NewDateSet()
		for i := 0; i < 15; i++ {
			dates.Add(today.AddDays(-i))
		}
		assert.Equal(t, 50, CompletionRate(dates, today, 30))
	})

	t.Run("dates outside the window do not count", func(t *testing.T) {
		dates := shared.NewDateSet(today.AddDays(-40), today.AddDays(-31))
		assert.Equal(t, 0, CompletionRate(dates, today, 30))
	})

	t.Run("non-positive window is zero", func(t *testing.T) {
		dates := shared.NewDateSet(today)
		assert.Equal(t, 0, CompletionRate(dates, today, 0))
	})
}

func TestDailyProgress(t *testing.T) {
	day := shared.MustDate("2025-06-10")

	t.Run("no activities yields zero percentage", func(t *testing.T) {
		p := DailyProgress(nil, day)
		assert.Equal(t, 0, p.Completed)
		assert.Equal(t, 0, p.Total)
		assert.Equal(t, 0, p.Percentage)
	})

	t.Run("counts activities completed on the day", func(t *testing.T) {
		activities := []Activity{
			{Name: "Meditate", Completed: shared.NewDateSet(day)},
			{Name: "Run", Completed: shared.NewDateSet(day.AddDays(-1))},
			{Name: "Read", Completed: shared.NewDateSet(day)},
		}
		p := DailyProgress(activities, day)
		assert.Equal(t, 2, p.Completed)
		assert.Equal(t, 3, p.Total)
		assert.Equal(t, 67, p.Percentage)
	})
}

func TestMonthlyProgress(t *testing.T) {
	t.Run("covers every day of the month", func(t *testing.T) {
		progress := MonthlyProgress(nil, 2025, time.June)
		require.Len(t, progress, 30)
		assert.Equal(t, "2025-06-01", progress[0].Date.String())
		assert.Equal(t, "2025-06-30", progress[29].Date.String())
	})

	t.Run("handles leap February", func(t *testing.T) {
		progress := MonthlyProgress(nil, 2024, time.February)
		assert.Len(t, progress, 29)
	})

	t.Run("carries per-day completion", func(t *testing.T) {
		day := shared.MustDate("2025-06-10")
		activities := []Activity{{Name: "Stretch", Completed: shared.NewDateSet(day)}}

		progress := MonthlyProgress(activities, 2025, time.June)
		require.Len(t, progress, 30)
		assert.Equal(t, 1, progress[9].Completed)
		assert.Equal(t, 100, progress[9].Percentage)
		assert.Equal(t, 0, progress[10].Completed)
	})
}
