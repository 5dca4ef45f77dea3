package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	"github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	trackingQueries "github.com/tendhq/tend/internal/tracking/application/queries"
)

var ErrEntryNotFound = errors.New("journal entry not found")

// SaveEntryCommand contains the data needed to write the day's entry.
// Saving twice for the same day replaces the content. Mood is optional;
// when present it is treated as a deliberate user choice and sticks.
type SaveEntryCommand struct {
	UserID  uuid.UUID
	Date    sharedDomain.Date
	Content string
	Mood    analyticsDomain.Mood
}

// SaveEntryResult contains the result of saving an entry.
type SaveEntryResult struct {
	EntryID   uuid.UUID
	Mood      analyticsDomain.Mood
	Sentiment domain.Sentiment
}

// DailySummaries reads the day's habit progress from the tracking context.
type DailySummaries interface {
	Handle(ctx context.Context, query trackingQueries.DailySummaryQuery) (*trackingQueries.DailySummaryDTO, error)
}

// SaveEntryHandler handles the SaveEntryCommand. On every save it
// re-derives the sentiment from the new text and snapshots the day's
// habit progress onto the entry.
type SaveEntryHandler struct {
	entryRepo  domain.EntryRepository
	summaries  DailySummaries
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewSaveEntryHandler creates a new SaveEntryHandler.
func NewSaveEntryHandler(
	entryRepo domain.EntryRepository,
	summaries DailySummaries,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *SaveEntryHandler {
	return &SaveEntryHandler{
		entryRepo:  entryRepo,
		summaries:  summaries,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the SaveEntryCommand.
func (h *SaveEntryHandler) Handle(ctx context.Context, cmd SaveEntryCommand) (*SaveEntryResult, error) {
	var result *SaveEntryResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		date := cmd.Date
		if date.IsZero() {
			date = sharedDomain.Today()
		}

		entry, err := h.entryRepo.FindByDate(txCtx, cmd.UserID, date)
		if err != nil {
			return err
		}
		if entry == nil {
			entry, err = domain.NewEntry(cmd.UserID, date, cmd.Content)
			if err != nil {
				return err
			}
		} else if err := entry.SetContent(cmd.Content); err != nil {
			return err
		}

		sentiment := analyticsDomain.AnalyzeSentiment(entry.Content())
		entry.AttachSentiment(domain.Sentiment{
			Score:      sentiment.Score,
			Label:      sentiment.Label,
			Confidence: sentiment.Confidence,
			Emotions:   sentiment.Emotions,
		})

		if cmd.Mood != "" {
			if err := entry.SetManualMood(cmd.Mood); err != nil {
				return err
			}
		} else {
			entry.ApplyDerivedMood(analyticsDomain.MoodFromSentiment(sentiment.Label, sentiment.Score))
		}

		summary, err := h.summaries.Handle(txCtx, trackingQueries.DailySummaryQuery{UserID: cmd.UserID, Date: date})
		if err != nil {
			return err
		}
		if summary.Total > 0 {
			entry.CaptureHabitSummary(domain.HabitSummary{
				Completed:  summary.Completed,
				Total:      summary.Total,
				HabitNames: summary.CompletedHabits,
			})
		}

		if err := h.entryRepo.Save(txCtx, entry); err != nil {
			return err
		}

		if err := saveEventsToOutbox(txCtx, h.outboxRepo, entry.DomainEvents(), cmd.UserID); err != nil {
			return err
		}

		result = &SaveEntryResult{
			EntryID:   entry.ID(),
			Mood:      entry.Mood(),
			Sentiment: *entry.Sentiment(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
