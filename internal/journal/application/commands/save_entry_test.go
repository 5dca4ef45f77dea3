package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	"github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	trackingQueries "github.com/tendhq/tend/internal/tracking/application/queries"
)

type mockEntryRepo struct {
	mock.Mock
}

func (m *mockEntryRepo) Save(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (*domain.Entry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Date) ([]*domain.Entry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *mockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSummaries struct {
	mock.Mock
}

func (m *mockSummaries) Handle(ctx context.Context, query trackingQueries.DailySummaryQuery) (*trackingQueries.DailySummaryDTO, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trackingQueries.DailySummaryDTO), args.Error(1)
}

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, err, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetFailed(ctx context.Context, maxRetries, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestSaveEntryHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.MustDate("2025-06-15")

	setup := func() (*mockEntryRepo, *mockSummaries, *mockOutboxRepo, *mockUnitOfWork, *SaveEntryHandler, context.Context, context.Context) {
		repo := new(mockEntryRepo)
		summaries := new(mockSummaries)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewSaveEntryHandler(repo, summaries, outboxRepo, uow)
		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")
		return repo, summaries, outboxRepo, uow, handler, ctx, txCtx
	}

	t.Run("creates a new entry with derived mood and habit snapshot", func(t *testing.T) {
		repo, summaries, outboxRepo, uow, handler, ctx, txCtx := setup()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByDate", txCtx, userID, day).Return(nil, nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Entry")).Return(nil)
		summaries.On("Handle", txCtx, trackingQueries.DailySummaryQuery{UserID: userID, Date: day}).
			Return(&trackingQueries.DailySummaryDTO{
				Date: day, Completed: 2, Total: 3,
				CompletedHabits: []string{"Run", "Read"},
			}, nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, SaveEntryCommand{
			UserID:  userID,
			Date:    day,
			Content: "wonderful peaceful happy day",
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, analyticsDomain.SentimentPositive, result.Sentiment.Label)
		assert.Equal(t, analyticsDomain.MoodGreat, result.Mood)

		repo.AssertExpectations(t)
		summaries.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("manual mood wins over derived mood", func(t *testing.T) {
		repo, summaries, outboxRepo, uow, handler, ctx, txCtx := setup()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByDate", txCtx, userID, day).Return(nil, nil)
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Entry")).Return(nil)
		summaries.On("Handle", txCtx, mock.Anything).
			Return(&trackingQueries.DailySummaryDTO{Date: day}, nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, SaveEntryCommand{
			UserID:  userID,
			Date:    day,
			Content: "wonderful peaceful happy day",
			Mood:    analyticsDomain.MoodLow,
		})

		require.NoError(t, err)
		assert.Equal(t, analyticsDomain.MoodLow, result.Mood)
	})

	t.Run("saving the same day again replaces content and keeps manual mood", func(t *testing.T) {
		repo, summaries, outboxRepo, uow, handler, ctx, txCtx := setup()

		existing, err := domain.NewEntry(userID, day, "old text")
		require.NoError(t, err)
		require.NoError(t, existing.SetManualMood(analyticsDomain.MoodOkay))
		existing.ClearDomainEvents()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByDate", txCtx, userID, day).Return(existing, nil)
		repo.On("Save", txCtx, existing).Return(nil)
		summaries.On("Handle", txCtx, mock.Anything).
			Return(&trackingQueries.DailySummaryDTO{Date: day}, nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, SaveEntryCommand{
			UserID:  userID,
			Date:    day,
			Content: "terrible awful day honestly",
		})

		require.NoError(t, err)
		assert.Equal(t, "terrible awful day honestly", existing.Content())
		assert.Equal(t, analyticsDomain.MoodOkay, result.Mood)
		assert.Equal(t, analyticsDomain.SentimentNegative, result.Sentiment.Label)
	})

	t.Run("no habit snapshot when the user tracks nothing", func(t *testing.T) {
		repo, summaries, outboxRepo, uow, handler, ctx, txCtx := setup()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByDate", txCtx, userID, day).Return(nil, nil)
		var saved *domain.Entry
		repo.On("Save", txCtx, mock.AnythingOfType("*domain.Entry")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Entry) }).Return(nil)
		summaries.On("Handle", txCtx, mock.Anything).
			Return(&trackingQueries.DailySummaryDTO{Date: day}, nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		_, err := handler.Handle(ctx, SaveEntryCommand{UserID: userID, Date: day, Content: "quiet day"})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Nil(t, saved.HabitSummary())
	})

	t.Run("rejects empty content", func(t *testing.T) {
		repo, _, _, uow, handler, ctx, txCtx := setup()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByDate", txCtx, userID, day).Return(nil, nil)

		_, err := handler.Handle(ctx, SaveEntryCommand{UserID: userID, Date: day, Content: "  "})

		assert.ErrorIs(t, err, domain.ErrEntryEmptyContent)
	})
}
