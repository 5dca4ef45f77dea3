package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

var (
	ErrEntryEmptyContent = errors.New("entry content cannot be empty")
	ErrEntryInvalidDate  = errors.New("invalid entry date")
	ErrInvalidMood       = errors.New("invalid mood")
)

// Sentiment holds the derived emotional reading of an entry's text.
type Sentiment struct {
	Score      int
	Label      analyticsDomain.SentimentLabel
	Confidence analyticsDomain.Confidence
	Emotions   []string
}

// HabitSummary is a snapshot of the day's habit progress, captured at
// write time so the entry keeps the numbers as they were that day.
type HabitSummary struct {
	Completed  int
	Total      int
	HabitNames []string
}

// Entry is a journal entry for a single calendar day. A user has at
// most one entry per day; saving again replaces the content and
// re-derives the sentiment. A mood set by hand sticks: later content
// edits never overwrite it.
type Entry struct {
	sharedDomain.BaseAggregateRoot
	userID       uuid.UUID
	date         sharedDomain.Date
	content      string
	mood         analyticsDomain.Mood
	manualMood   bool
	sentiment    *Sentiment
	habitSummary *HabitSummary
}

// NewEntry creates a journal entry for the given day.
func NewEntry(userID uuid.UUID, date sharedDomain.Date, content string) (*Entry, error) {
	if date.IsZero() {
		return nil, ErrEntryInvalidDate
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEntryEmptyContent
	}

	entry := &Entry{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		date:              date,
		content:           content,
	}

	entry.AddDomainEvent(NewEntryCreated(entry))

	return entry, nil
}

// Getters
func (e *Entry) UserID() uuid.UUID               { return e.userID }
func (e *Entry) Date() sharedDomain.Date         { return e.date }
func (e *Entry) Content() string                 { return e.content }
func (e *Entry) Mood() analyticsDomain.Mood      { return e.mood }
func (e *Entry) HasManualMood() bool             { return e.manualMood }
func (e *Entry) Sentiment() *Sentiment           { return e.sentiment }
func (e *Entry) HabitSummary() *HabitSummary     { return e.habitSummary }

// SetContent replaces the entry text.
func (e *Entry) SetContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEntryEmptyContent
	}
	e.content = content
	e.Touch()
	e.AddDomainEvent(NewEntryUpdated(e))
	return nil
}

// SetManualMood records a mood chosen by the user. From then on,
// derived moods are ignored for this entry.
func (e *Entry) SetManualMood(mood analyticsDomain.Mood) error {
	if !analyticsDomain.IsValidMood(mood) {
		return ErrInvalidMood
	}
	e.mood = mood
	e.manualMood = true
	e.Touch()
	return nil
}

// ApplyDerivedMood sets the mood from sentiment analysis unless the
// user already picked one by hand.
func (e *Entry) ApplyDerivedMood(mood analyticsDomain.Mood) {
	if e.manualMood {
		return
	}
	e.mood = mood
	e.Touch()
}

// AttachSentiment stores the derived sentiment reading.
func (e *Entry) AttachSentiment(s Sentiment) {
	e.sentiment = &s
	e.Touch()
}

// CaptureHabitSummary snapshots the day's habit progress onto the entry.
func (e *Entry) CaptureHabitSummary(summary HabitSummary) {
	e.habitSummary = &summary
	e.Touch()
}

// RehydrateEntry recreates an entry from persisted state without
// generating events.
func RehydrateEntry(
	id uuid.UUID,
	userID uuid.UUID,
	date sharedDomain.Date,
	content string,
	mood analyticsDomain.Mood,
	manualMood bool,
	sentiment *Sentiment,
	habitSummary *HabitSummary,
	createdAt, updatedAt time.Time,
) *Entry {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Entry{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity),
		userID:            userID,
		date:              date,
		content:           content,
		mood:              mood,
		manualMood:        manualMood,
		sentiment:         sentiment,
		habitSummary:      habitSummary,
	}
}
