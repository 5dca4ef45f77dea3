package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/analytics/domain"
	goalsDomain "github.com/tendhq/tend/internal/goals/domain"
	journalDomain "github.com/tendhq/tend/internal/journal/domain"
	sharedApplication "github.com/tendhq/tend/internal/shared/application"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/outbox"
	trackingDomain "github.com/tendhq/tend/internal/tracking/domain"
	"github.com/tendhq/tend/pkg/observability"
)

const moodTrendDays = 14

// HabitStats is the per-habit block of the dashboard.
type HabitStats struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Streak         int    `json:"streak"`
	LongestStreak  int    `json:"longestStreak"`
	CompletionRate int    `json:"completionRate"`
	TotalDone      int    `json:"totalDone"`
}

// MoodPoint is one day of the mood trend line.
type MoodPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Mood  string `json:"mood"`
}

// DashboardView is the assembled analytics read model. Everything in it
// is derived on the fly from live data; only the glow seen-set persists.
type DashboardView struct {
	GeneratedAt  time.Time                 `json:"generatedAt"`
	Today        domain.DayProgress        `json:"today"`
	Habits       []HabitStats              `json:"habits"`
	MoodTrend    []MoodPoint               `json:"moodTrend"`
	Correlation  *domain.CorrelationResult `json:"correlation,omitempty"`
	Balance      domain.BalanceReport      `json:"balance"`
	Achievements []domain.Achievement      `json:"achievements"`
	TotalPoints  int                       `json:"totalPoints"`
	NewGlow      []domain.GlowMoment       `json:"newGlow,omitempty"`
}

// SnapshotCache caches rendered dashboards keyed by a content hash of
// the inputs. A hit means nothing changed since the last render.
type SnapshotCache interface {
	Get(ctx context.Context, userID uuid.UUID, fingerprint string) (*DashboardView, bool)
	Set(ctx context.Context, userID uuid.UUID, fingerprint string, view *DashboardView)
}

// DashboardService assembles the full analytics dashboard from the
// tracking, journal, and goals contexts.
type DashboardService struct {
	habitRepo   trackingDomain.HabitRepository
	routineRepo trackingDomain.RoutineRepository
	entryRepo   journalDomain.EntryRepository
	goalRepo    goalsDomain.GoalRepository
	glowStore   domain.GlowSeenStore
	cache       SnapshotCache
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	metrics     observability.Metrics
	logger      *slog.Logger
}

// NewDashboardService creates a new DashboardService. The cache may be
// nil, in which case every call renders fresh.
func NewDashboardService(
	habitRepo trackingDomain.HabitRepository,
	routineRepo trackingDomain.RoutineRepository,
	entryRepo journalDomain.EntryRepository,
	goalRepo goalsDomain.GoalRepository,
	glowStore domain.GlowSeenStore,
	cache SnapshotCache,
	logger *slog.Logger,
) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		habitRepo:   habitRepo,
		routineRepo: routineRepo,
		entryRepo:   entryRepo,
		goalRepo:    goalRepo,
		glowStore:   glowStore,
		cache:       cache,
		metrics:     observability.NoopMetrics{},
		logger:      logger,
	}
}

// WithMetrics sets the metrics sink for render instrumentation.
func (s *DashboardService) WithMetrics(m observability.Metrics) *DashboardService {
	if m != nil {
		s.metrics = m
	}
	return s
}

// WithOutbox makes glow reveals emit events alongside the seen-set
// write. Without it, reveals are recorded silently.
func (s *DashboardService) WithOutbox(repo outbox.Repository, uow sharedApplication.UnitOfWork) *DashboardService {
	s.outboxRepo = repo
	s.uow = uow
	return s
}

// Dashboard derives the full analytics view for a user as of today.
func (s *DashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardView, error) {
	return s.DashboardAsOf(ctx, userID, sharedDomain.Today())
}

// DashboardAsOf derives the dashboard for an arbitrary day.
func (s *DashboardService) DashboardAsOf(ctx context.Context, userID uuid.UUID, today sharedDomain.Date) (*DashboardView, error) {
	facts, err := s.collectFacts(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen, err := s.glowStore.SeenIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	fingerprint := facts.fingerprint(today, seen)
	if s.cache != nil {
		if view, ok := s.cache.Get(ctx, userID, fingerprint); ok {
			s.metrics.Counter(observability.MetricDashboardCacheHits, 1)
			s.logger.Debug("dashboard served from snapshot cache", "user_id", userID)
			return view, nil
		}
	}

	timer := observability.StartTimer("dashboard.render").WithMetrics(s.metrics)
	view := s.render(facts, today, seen)
	timer.Stop()
	s.metrics.Counter(observability.MetricDashboardRenders, 1)

	if len(view.NewGlow) > 0 {
		if err := s.recordGlowReveals(ctx, userID, view.NewGlow); err != nil {
			return nil, err
		}
		s.metrics.Counter(observability.MetricGlowUnlocked, int64(len(view.NewGlow)))
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, fingerprint, view)
	}

	return view, nil
}

// userFacts is the raw material the dashboard derives from.
type userFacts struct {
	habitActivities   []domain.Activity
	routineActivities []domain.Activity
	skincareTotal     int
	entries           []domain.EntryFacts
	entryDates        sharedDomain.DateSet
	goals             []domain.GoalFacts
}

// recordGlowReveals marks the glow ids seen and, when an outbox is
// wired, emits a GlowUnlocked event per reveal in the same transaction.
func (s *DashboardService) recordGlowReveals(ctx context.Context, userID uuid.UUID, reveals []domain.GlowMoment) error {
	ids := make([]string, 0, len(reveals))
	for _, g := range reveals {
		ids = append(ids, g.ID)
	}

	if s.outboxRepo == nil || s.uow == nil {
		return s.glowStore.MarkSeen(ctx, userID, ids)
	}

	events := make([]sharedDomain.DomainEvent, 0, len(reveals))
	for _, g := range reveals {
		events = append(events, domain.NewGlowUnlocked(userID, g))
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))

	return sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		if err := s.glowStore.MarkSeen(txCtx, userID, ids); err != nil {
			return err
		}
		msgs := make([]*outbox.Message, 0, len(events))
		for _, event := range events {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return s.outboxRepo.SaveBatch(txCtx, msgs)
	})
}

func (s *DashboardService) collectFacts(ctx context.Context, userID uuid.UUID) (*userFacts, error) {
	habits, err := s.habitRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	routines, err := s.routineRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	facts := &userFacts{entryDates: sharedDomain.NewDateSet()}

	for _, h := range habits {
		facts.habitActivities = append(facts.habitActivities, domain.Activity{
			Name:      h.Name(),
			Category:  h.Category(),
			CreatedAt: h.CreatedDate(),
			Completed: h.CompletedDates(),
		})
	}
	for _, r := range routines {
		facts.routineActivities = append(facts.routineActivities, domain.Activity{
			Name:      r.Name(),
			Category:  string(r.Type()),
			CreatedAt: r.CreatedDate(),
			Completed: r.CompletedDates(),
		})
		if r.Type() == trackingDomain.RoutineSkincare {
			facts.skincareTotal += r.TotalCompletions()
		}
	}
	for _, e := range entries {
		fact := domain.EntryFacts{Date: e.Date()}
		if sent := e.Sentiment(); sent != nil {
			fact.Score = sent.Score
			fact.HasSentiment = true
		}
		if hs := e.HabitSummary(); hs != nil {
			fact.Completed = hs.Completed
			fact.Total = hs.Total
			fact.HabitNames = hs.HabitNames
		}
		facts.entries = append(facts.entries, fact)
		facts.entryDates.Add(e.Date())
	}
	for _, g := range goals {
		facts.goals = append(facts.goals, domain.GoalFacts{
			Title:       g.Title(),
			Progress:    g.Progress(),
			IsCompleted: g.IsCompleted(),
		})
	}

	return facts, nil
}

// fingerprint hashes everything the render depends on. Identical inputs
// produce an identical dashboard, so the hash doubles as a cache key.
func (f *userFacts) fingerprint(today sharedDomain.Date, seen map[string]bool) string {
	payload := struct {
		Today    string
		Habits   []domain.Activity
		Routines []domain.Activity
		Skincare int
		Entries  []domain.EntryFacts
		Goals    []domain.GoalFacts
		Seen     []string
	}{
		Today:    today.String(),
		Habits:   f.habitActivities,
		Routines: f.routineActivities,
		Skincare: f.skincareTotal,
		Entries:  f.entries,
		Goals:    f.goals,
		Seen:     domain.MergeSeen(seen, nil),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (s *DashboardService) render(facts *userFacts, today sharedDomain.Date, seen map[string]bool) *DashboardView {
	view := &DashboardView{GeneratedAt: time.Now()}

	view.Today = domain.DailyProgress(activitiesExisting(facts.habitActivities, today), today)

	totalCompletions := 0
	longestHabitStreak := 0
	for _, a := range facts.habitActivities {
		longest := domain.LongestStreak(a.Completed)
		if longest > longestHabitStreak {
			longestHabitStreak = longest
		}
		totalCompletions += a.Completed.Len()
		view.Habits = append(view.Habits, HabitStats{
			Name:           a.Name,
			Category:       a.Category,
			Streak:         domain.CurrentStreak(a.Completed, today),
			LongestStreak:  longest,
			CompletionRate: domain.CompletionRate(a.Completed, today, domain.DefaultRateWindow),
			TotalDone:      a.Completed.Len(),
		})
	}

	view.MoodTrend = moodTrend(facts.entries, today)
	view.Correlation = domain.HabitMoodCorrelation(facts.entries)
	view.Balance = domain.LifeBalance(facts.habitActivities, facts.goals, today)

	counters := s.counters(facts, view, today, longestHabitStreak, totalCompletions)
	view.Achievements = domain.EvaluateAchievements(counters)
	view.TotalPoints = domain.TotalPoints(view.Achievements)
	view.NewGlow = domain.NewGlowMoments(counters, seen)

	return view
}

func (s *DashboardService) counters(facts *userFacts, view *DashboardView, today sharedDomain.Date, longestHabitStreak, totalCompletions int) domain.Counters {
	goalsCompleted := 0
	for _, g := range facts.goals {
		if g.IsCompleted {
			goalsCompleted++
		}
	}

	longestRoutineStreak := 0
	for _, a := range facts.routineActivities {
		if longest := domain.LongestStreak(a.Completed); longest > longestRoutineStreak {
			longestRoutineStreak = longest
		}
	}

	activeAreas := 0
	for _, area := range view.Balance.Areas {
		if area.HabitCount > 0 {
			activeAreas++
		}
	}

	return domain.Counters{
		TotalCompletions:    totalCompletions,
		LongestStreak:       longestHabitStreak,
		JournalEntries:      len(facts.entries),
		JournalStreak:       domain.LongestStreak(facts.entryDates),
		GoalsCreated:        len(facts.goals),
		GoalsCompleted:      goalsCompleted,
		SkincareCompletions: facts.skincareTotal,
		RoutineStreak:       longestRoutineStreak,
		PerfectDay:          view.Today.Total > 0 && view.Today.Completed == view.Today.Total,
		ActiveAreas:         activeAreas,
	}
}

// activitiesExisting filters out activities created after the given day.
func activitiesExisting(activities []domain.Activity, day sharedDomain.Date) []domain.Activity {
	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if !day.Before(a.CreatedAt) {
			out = append(out, a)
		}
	}
	return out
}

// moodTrend returns one point per journaled day with sentiment in the
// trailing window, oldest first.
func moodTrend(entries []domain.EntryFacts, today sharedDomain.Date) []MoodPoint {
	cutoff := today.AddDays(-(moodTrendDays - 1))

	var points []MoodPoint
	for _, e := range entries {
		if !e.HasSentiment || e.Date.Before(cutoff) || today.Before(e.Date) {
			continue
		}
		label := labelForTrend(e.Score)
		points = append(points, MoodPoint{Date: e.Date.String(), Score: e.Score, Mood: label})
	}
	return points
}

func labelForTrend(score int) string {
	switch {
	case score > 10:
		return string(domain.MoodFromSentiment(domain.SentimentPositive, score))
	case score < -10:
		return string(domain.MoodFromSentiment(domain.SentimentNegative, score))
	default:
		return string(domain.MoodOkay)
	}
}
