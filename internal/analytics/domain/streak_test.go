package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	shared "github.com/tendhq/tend/internal/shared/domain"
)

func TestCurrentStreak(t *testing.T) {
	today := shared.MustDate("2025-06-15")

	t.Run("empty set has no streak", func(t *testing.T) {
		assert.Equal(t, 0, CurrentStreak(shared.NewDateSet(), today))
	})

	t.Run("today alone is a streak of one", func(t *testing.T) {
		dates := shared.NewDateSet(today)
		assert.Equal(t, 1, CurrentStreak(dates, today))
	})

	t.Run("counts consecutive days back from today", func(t *testing.T) {
		dates := shared.NewDateSet(today, today.AddDays(-1), today.AddDays(-2))
		assert.Equal(t, 3, CurrentStreak(dates, today))
	})

	t.Run("grace keeps streak alive when today is not yet marked", func(t *testing.T) {
		dates := shared.NewDateSet(today.AddDays(-1))
		assert.Equal(t, 1, CurrentStreak(dates, today))
	})

	t.Run("grace streak extends backward from yesterday", func(t *testing.T) {
		dates := shared.NewDateSet(today.AddDays(-1), today.AddDays(-2), today.AddDays(-3))
		assert.Equal(t, 3, CurrentStreak(dates, today))
	})

	t.Run("two consecutive misses end the streak", func(t *testing.T) {
		dates := shared.NewDateSet(today.AddDays(-2), today.AddDays(-3))
		assert.Equal(t, 0, CurrentStreak(dates, today))
	})

	t.Run("gap inside run stops the count", func(t *testing.T) {
		dates := shared.NewDateSet(today, today.AddDays(-1), today.AddDays(-3))
		assert.Equal(t, 2, CurrentStreak(dates, today))
	})
}

func TestLongestStreak(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		assert.Equal(t, 0, LongestStreak(shared.NewDateSet()))
	})

	t.Run("single date", func(t *testing.T) {
		assert.Equal(t, 1, LongestStreak(shared.NewDateSet(shared.MustDate("2025-06-01"))))
	})

	t.Run("finds the longest run among several", func(t *testing.T) {
		dates := shared.NewDateSet(
			shared.MustDate("2025-06-01"),
			shared.MustDate("2025-06-02"),
			shared.MustDate("2025-06-03"),
			shared.MustDate("2025-06-05"),
			shared.MustDate("2025-06-06"),
			shared.MustDate("2025-06-07"),
			shared.MustDate("2025-06-08"),
		)
		assert.Equal(t, 4, LongestStreak(dates))
	})

	t.Run("runs across month boundaries", func(t *testing.T) {
		dates := shared.NewDateSet(
			shared.MustDate("2025-01-30"),
			shared.MustDate("2025-01-31"),
			shared.MustDate("2025-02-01"),
		)
		assert.Equal(t, 3, LongestStreak(dates))
	})

	t.Run("never below the current streak", func(t *testing.T) {
		today := shared.MustDate("2025-06-15")
		sets := []shared.DateSet{
			shared.NewDateSet(),
			shared.NewDateSet(today),
			shared.NewDateSet(today, today.AddDays(-1)),
			shared.NewDateSet(today.AddDays(-1), today.AddDays(-2), today.AddDays(-5)),
			shared.NewDateSet(today.AddDays(-2), today.AddDays(-3), today.AddDays(-4)),
		}
		for _, dates := range sets {
			assert.GreaterOrEqual(t, LongestStreak(dates), CurrentStreak(dates, today))
		}
	})
}
