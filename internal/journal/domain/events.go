package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

const entryAggregateType = "JournalEntry"

// EntryCreated is emitted when a journal entry is created.
type EntryCreated struct {
	sharedDomain.BaseEvent
	EntryID uuid.UUID `json:"entry_id"`
	UserID  uuid.UUID `json:"user_id"`
	Date    string    `json:"date"`
}

// NewEntryCreated creates an EntryCreated event.
func NewEntryCreated(e *Entry) *EntryCreated {
	return &EntryCreated{
		BaseEvent: sharedDomain.NewBaseEvent(e.ID(), entryAggregateType, "journal.entry.created"),
		EntryID:   e.ID(),
		UserID:    e.UserID(),
		Date:      e.Date().String(),
	}
}

// EntryUpdated is emitted when an entry's content is replaced.
type EntryUpdated struct {
	sharedDomain.BaseEvent
	EntryID uuid.UUID `json:"entry_id"`
	UserID  uuid.UUID `json:"user_id"`
	Date    string    `json:"date"`
}

// NewEntryUpdated creates an EntryUpdated event.
func NewEntryUpdated(e *Entry) *EntryUpdated {
	return &EntryUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(e.ID(), entryAggregateType, "journal.entry.updated"),
		EntryID:   e.ID(),
		UserID:    e.UserID(),
		Date:      e.Date().String(),
	}
}
