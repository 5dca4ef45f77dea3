// Package domain implements the engagement analytics engine: pure
// derivations from completion histories, journal entries, and goals into
// streaks, rates, sentiment, correlations, balance scores, and unlocks.
// Nothing in this package reads storage or mutates its inputs.
package domain

import (
	shared "github.com/tendhq/tend/internal/shared/domain"
)

// CurrentStreak returns the length of the consecutive-day run ending at
// today. A day not yet marked today does not break the run: when today is
// absent but yesterday is present, the streak is counted anchored at
// yesterday, so a streak only dies after two consecutive misses.
func CurrentStreak(dates shared.DateSet, today shared.Date) int {
	if dates.Len() == 0 {
		return 0
	}

	count := 0
	cursor := today
	switch {
	case dates.Contains(today):
		count = 1
		cursor = today.AddDays(-1)
	case dates.Contains(today.AddDays(-1)):
		// Grace: yesterday anchors a still-active streak.
		cursor = today.AddDays(-1)
	default:
		return 0
	}

	for dates.Contains(cursor) {
		count++
		cursor = cursor.AddDays(-1)
	}

	return count
}

// LongestStreak returns the length of the longest consecutive-day run
// anywhere in the set. Empty set yields 0, a single day yields 1.
func LongestStreak(dates shared.DateSet) int {
	sorted := dates.Sorted()
	if len(sorted) == 0 {
		return 0
	}

	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].DaysUntil(sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}
