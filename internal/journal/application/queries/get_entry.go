package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

// ErrEntryNotFound is returned when no entry exists for the day.
var ErrEntryNotFound = errors.New("journal entry not found")

// SentimentDTO carries the derived sentiment of an entry.
type SentimentDTO struct {
	Score      int
	Label      string
	Confidence string
	Emotions   []string
}

// EntryDTO is a data transfer object for journal entries.
type EntryDTO struct {
	ID             uuid.UUID
	Date           string
	Content        string
	Mood           string
	ManualMood     bool
	Sentiment      *SentimentDTO
	HabitsDone     int
	HabitsTotal    int
	CompletedNames []string
	CreatedAt      time.Time
}

// GetEntryQuery contains the parameters for reading one day's entry.
type GetEntryQuery struct {
	UserID uuid.UUID
	Date   sharedDomain.Date
}

// GetEntryHandler handles the GetEntryQuery.
type GetEntryHandler struct {
	entryRepo domain.EntryRepository
}

// NewGetEntryHandler creates a new GetEntryHandler.
func NewGetEntryHandler(entryRepo domain.EntryRepository) *GetEntryHandler {
	return &GetEntryHandler{entryRepo: entryRepo}
}

// Handle executes the GetEntryQuery.
func (h *GetEntryHandler) Handle(ctx context.Context, query GetEntryQuery) (*EntryDTO, error) {
	date := query.Date
	if date.IsZero() {
		date = sharedDomain.Today()
	}

	entry, err := h.entryRepo.FindByDate(ctx, query.UserID, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	dto := toEntryDTO(entry)
	return &dto, nil
}

func toEntryDTO(entry *domain.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         entry.ID(),
		Date:       entry.Date().String(),
		Content:    entry.Content(),
		Mood:       string(entry.Mood()),
		ManualMood: entry.HasManualMood(),
		CreatedAt:  entry.CreatedAt(),
	}
	if s := entry.Sentiment(); s != nil {
		dto.Sentiment = &SentimentDTO{
			Score:      s.Score,
			Label:      string(s.Label),
			Confidence: string(s.Confidence),
			Emotions:   s.Emotions,
		}
	}
	if hs := entry.HabitSummary(); hs != nil {
		dto.HabitsDone = hs.Completed
		dto.HabitsTotal = hs.Total
		dto.CompletedNames = hs.HabitNames
	}
	return dto
}
