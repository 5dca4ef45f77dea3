package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tendhq/tend/internal/analytics/domain"
	goalsDomain "github.com/tendhq/tend/internal/goals/domain"
	journalDomain "github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	trackingDomain "github.com/tendhq/tend/internal/tracking/domain"
)

type mockHabitRepo struct{ mock.Mock }

func (m *mockHabitRepo) Save(ctx context.Context, habit *trackingDomain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *mockHabitRepo) FindByID(ctx context.Context, id uuid.UUID) (*trackingDomain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trackingDomain.Habit), args.Error(1)
}

func (m *mockHabitRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*trackingDomain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trackingDomain.Habit), args.Error(1)
}

func (m *mockHabitRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*trackingDomain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trackingDomain.Habit), args.Error(1)
}

func (m *mockHabitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRoutineRepo struct{ mock.Mock }

func (m *mockRoutineRepo) Save(ctx context.Context, routine *trackingDomain.Routine) error {
	return m.Called(ctx, routine).Error(0)
}

func (m *mockRoutineRepo) FindByID(ctx context.Context, id uuid.UUID) (*trackingDomain.Routine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trackingDomain.Routine), args.Error(1)
}

func (m *mockRoutineRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*trackingDomain.Routine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trackingDomain.Routine), args.Error(1)
}

func (m *mockRoutineRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*trackingDomain.Routine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trackingDomain.Routine), args.Error(1)
}

func (m *mockRoutineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Save(ctx context.Context, entry *journalDomain.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*journalDomain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journalDomain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (*journalDomain.Entry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journalDomain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*journalDomain.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journalDomain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Date) ([]*journalDomain.Entry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journalDomain.Entry), args.Error(1)
}

func (m *mockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockGoalRepo struct{ mock.Mock }

func (m *mockGoalRepo) Save(ctx context.Context, goal *goalsDomain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*goalsDomain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*goalsDomain.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*goalsDomain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*goalsDomain.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindOpenByUserID(ctx context.Context, userID uuid.UUID) ([]*goalsDomain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*goalsDomain.Goal), args.Error(1)
}

func (m *mockGoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockGlowStore struct{ mock.Mock }

func (m *mockGlowStore) SeenIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *mockGlowStore) MarkSeen(ctx context.Context, userID uuid.UUID, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}

// memoryCache is a trivial SnapshotCache for tests.
type memoryCache struct {
	store map[string]*DashboardView
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string]*DashboardView)}
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, fingerprint string) (*DashboardView, bool) {
	view, ok := c.store[userID.String()+fingerprint]
	return view, ok
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, fingerprint string, view *DashboardView) {
	c.store[userID.String()+fingerprint] = view
}

func testHabit(userID uuid.UUID, name, category string, created sharedDomain.Date, done ...sharedDomain.Date) *trackingDomain.Habit {
	return trackingDomain.RehydrateHabit(uuid.New(), userID, name, category, false,
		created.Time(), created.Time(), sharedDomain.NewDateSet(done...))
}

func TestDashboardService(t *testing.T) {
	userID := uuid.New()
	today := sharedDomain.MustDate("2025-06-15")
	start := sharedDomain.MustDate("2025-06-01")

	setup := func() (*mockHabitRepo, *mockRoutineRepo, *mockEntryRepo, *mockGoalRepo, *mockGlowStore, *DashboardService) {
		habitRepo := new(mockHabitRepo)
		routineRepo := new(mockRoutineRepo)
		entryRepo := new(mockEntryRepo)
		goalRepo := new(mockGoalRepo)
		glowStore := new(mockGlowStore)
		svc := NewDashboardService(habitRepo, routineRepo, entryRepo, goalRepo, glowStore, nil, nil)
		return habitRepo, routineRepo, entryRepo, goalRepo, glowStore, svc
	}

	t.Run("derives habit stats and today's progress", func(t *testing.T) {
		habitRepo, routineRepo, entryRepo, goalRepo, glowStore, svc := setup()

		habits := []*trackingDomain.Habit{
			testHabit(userID, "Run", "fitness", start,
				today.AddDays(-2), today.AddDays(-1), today),
			testHabit(userID, "Read", "learning", start),
		}
		habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return(habits, nil)
		routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{}, nil)
		entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
		goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
		glowStore.On("SeenIDs", mock.Anything, userID).Return(map[string]bool{}, nil)
		glowStore.On("MarkSeen", mock.Anything, userID, mock.Anything).Return(nil)

		view, err := svc.DashboardAsOf(context.Background(), userID, today)

		require.NoError(t, err)
		require.Len(t, view.Habits, 2)
		assert.Equal(t, 3, view.Habits[0].Streak)
		assert.Equal(t, 3, view.Habits[0].TotalDone)
		assert.Equal(t, 0, view.Habits[1].Streak)
		assert.Equal(t, 1, view.Today.Completed)
		assert.Equal(t, 2, view.Today.Total)
		assert.Nil(t, view.Correlation)
	})

	t.Run("new glow moments are revealed once and marked seen", func(t *testing.T) {
		habitRepo, routineRepo, entryRepo, goalRepo, glowStore, svc := setup()

		habits := []*trackingDomain.Habit{
			testHabit(userID, "Run", "fitness", start, today),
		}
		habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return(habits, nil)
		routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{}, nil)
		entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
		goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
		glowStore.On("SeenIDs", mock.Anything, userID).Return(map[string]bool{}, nil)

		var marked []string
		glowStore.On("MarkSeen", mock.Anything, userID, mock.Anything).
			Run(func(args mock.Arguments) { marked = args.Get(2).([]string) }).Return(nil)

		view, err := svc.DashboardAsOf(context.Background(), userID, today)

		require.NoError(t, err)
		// one completion, one perfect day
		require.Len(t, view.NewGlow, 2)
		assert.Equal(t, "first-glow", view.NewGlow[0].ID)
		assert.Equal(t, "perfect-glow", view.NewGlow[1].ID)
		assert.Equal(t, []string{"first-glow", "perfect-glow"}, marked)
	})

	t.Run("already-seen glow moments stay hidden", func(t *testing.T) {
		habitRepo, routineRepo, entryRepo, goalRepo, glowStore, svc := setup()

		habits := []*trackingDomain.Habit{
			testHabit(userID, "Run", "fitness", start, today),
		}
		habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return(habits, nil)
		routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{}, nil)
		entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
		goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
		glowStore.On("SeenIDs", mock.Anything, userID).
			Return(map[string]bool{"first-glow": true, "perfect-glow": true}, nil)

		view, err := svc.DashboardAsOf(context.Background(), userID, today)

		require.NoError(t, err)
		assert.Empty(t, view.NewGlow)
		glowStore.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("identical inputs hit the snapshot cache", func(t *testing.T) {
		habitRepo, routineRepo, entryRepo, goalRepo, glowStore, _ := setup()
		cache := newMemoryCache()
		svc := NewDashboardService(habitRepo, routineRepo, entryRepo, goalRepo, glowStore, cache, nil)

		habits := []*trackingDomain.Habit{
			testHabit(userID, "Run", "fitness", start, today.AddDays(-1)),
		}
		habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return(habits, nil)
		routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{}, nil)
		entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
		goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
		glowStore.On("SeenIDs", mock.Anything, userID).Return(map[string]bool{"first-glow": true}, nil)

		first, err := svc.DashboardAsOf(context.Background(), userID, today)
		require.NoError(t, err)

		second, err := svc.DashboardAsOf(context.Background(), userID, today)
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("empty account yields an empty but valid view", func(t *testing.T) {
		habitRepo, routineRepo, entryRepo, goalRepo, glowStore, svc := setup()

		habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Habit{}, nil)
		routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{}, nil)
		entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
		goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
		glowStore.On("SeenIDs", mock.Anything, userID).Return(map[string]bool{}, nil)

		view, err := svc.DashboardAsOf(context.Background(), userID, today)

		require.NoError(t, err)
		assert.Zero(t, view.Today.Total)
		assert.Empty(t, view.Habits)
		assert.Nil(t, view.Correlation)
		assert.Len(t, view.Balance.Areas, 4)
		assert.Zero(t, view.TotalPoints)
		for _, a := range view.Achievements {
			assert.False(t, a.Unlocked)
		}
	})

	t.Run("skincare routine feeds the glow counters", func(t *testing.T) {
		habitRepo, routineRepo, entryRepo, goalRepo, glowStore, svc := setup()

		var done []sharedDomain.Date
		for i := 0; i < 7; i++ {
			done = append(done, today.AddDays(-i))
		}
		routine := trackingDomain.RehydrateRoutine(uuid.New(), userID, "Evening skincare",
			trackingDomain.RoutineSkincare, []string{"cleanse"}, false,
			start.Time(), start.Time(), sharedDomain.NewDateSet(done...))

		habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Habit{}, nil)
		routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{routine}, nil)
		entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
		goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
		glowStore.On("SeenIDs", mock.Anything, userID).Return(map[string]bool{}, nil)
		glowStore.On("MarkSeen", mock.Anything, userID, mock.Anything).Return(nil)

		view, err := svc.DashboardAsOf(context.Background(), userID, today)

		require.NoError(t, err)
		ids := make([]string, 0, len(view.NewGlow))
		for _, g := range view.NewGlow {
			ids = append(ids, g.ID)
		}
		assert.Contains(t, ids, "skincare-glow")

		var glowUp domain.Achievement
		for _, a := range view.Achievements {
			if a.ID == "glow-up" {
				glowUp = a
			}
		}
		assert.Equal(t, 7, glowUp.Current)
	})
}

type passthroughUOW struct{}

func (passthroughUOW) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (passthroughUOW) Commit(ctx context.Context) error                   { return nil }
func (passthroughUOW) Rollback(ctx context.Context) error                 { return nil }

type captureOutbox struct {
	saved []*outbox.Message
}

func (c *captureOutbox) Save(_ context.Context, msg *outbox.Message) error {
	c.saved = append(c.saved, msg)
	return nil
}

func (c *captureOutbox) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	for _, msg := range msgs {
		if err := c.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (c *captureOutbox) GetUnpublished(context.Context, int) ([]*outbox.Message, error) {
	return nil, nil
}
func (c *captureOutbox) MarkPublished(context.Context, int64) error { return nil }
func (c *captureOutbox) MarkFailed(context.Context, int64, string, time.Time) error {
	return nil
}
func (c *captureOutbox) MarkDead(context.Context, int64, string) error { return nil }
func (c *captureOutbox) GetFailed(context.Context, int, int) ([]*outbox.Message, error) {
	return nil, nil
}
func (c *captureOutbox) DeleteOld(context.Context, int) (int64, error) { return 0, nil }

func TestGlowRevealsEmitOutboxEvents(t *testing.T) {
	userID := uuid.New()
	today := sharedDomain.MustDate("2025-06-15")
	start := sharedDomain.MustDate("2025-06-01")

	habitRepo := new(mockHabitRepo)
	routineRepo := new(mockRoutineRepo)
	entryRepo := new(mockEntryRepo)
	goalRepo := new(mockGoalRepo)
	glowStore := new(mockGlowStore)
	ob := &captureOutbox{}

	svc := NewDashboardService(habitRepo, routineRepo, entryRepo, goalRepo, glowStore, nil, nil).
		WithOutbox(ob, passthroughUOW{})

	habits := []*trackingDomain.Habit{
		testHabit(userID, "Run", "fitness", start, today),
	}
	habitRepo.On("FindActiveByUserID", mock.Anything, userID).Return(habits, nil)
	routineRepo.On("FindActiveByUserID", mock.Anything, userID).Return([]*trackingDomain.Routine{}, nil)
	entryRepo.On("FindByUserID", mock.Anything, userID).Return([]*journalDomain.Entry{}, nil)
	goalRepo.On("FindByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)
	glowStore.On("SeenIDs", mock.Anything, userID).Return(map[string]bool{}, nil)
	glowStore.On("MarkSeen", mock.Anything, userID, mock.Anything).Return(nil)

	view, err := svc.DashboardAsOf(context.Background(), userID, today)

	require.NoError(t, err)
	require.Len(t, view.NewGlow, 2)
	require.Len(t, ob.saved, 2)
	for _, msg := range ob.saved {
		assert.Equal(t, "analytics.glow.unlocked", msg.RoutingKey)
		assert.Equal(t, userID, msg.AggregateID)
	}
}
