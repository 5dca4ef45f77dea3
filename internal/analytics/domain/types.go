package domain

import (
	shared "github.com/tendhq/tend/internal/shared/domain"
)

// Activity is the engine's read-only view of one tracked entity's
// completion history (habit, routine, or skincare routine). Callers build
// snapshots from their aggregates; the engine never sees repositories.
type Activity struct {
	Name      string
	Category  string
	CreatedAt shared.Date
	Completed shared.DateSet
}

// GoalFacts is the engine's read-only view of a goal.
type GoalFacts struct {
	Title       string
	Progress    int // 0-100
	IsCompleted bool
}

// EntryFacts is the engine's read-only view of one journal entry.
// HasSentiment is false when the entry was never analyzed; Completed and
// Total describe the same-day habit summary captured at save time.
type EntryFacts struct {
	Date         shared.Date
	Score        int
	HasSentiment bool
	Completed    int
	Total        int
	HabitNames   []string
}

// HasHabitSummary reports whether the entry recorded a same-day habit
// completion summary.
func (e EntryFacts) HasHabitSummary() bool { return e.Total > 0 }
