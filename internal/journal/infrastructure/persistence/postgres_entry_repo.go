package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	"github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
)

// PostgresEntryRepository implements domain.EntryRepository using PostgreSQL.
type PostgresEntryRepository struct {
	conn database.Connection
}

// NewPostgresEntryRepository creates a new PostgreSQL entry repository.
func NewPostgresEntryRepository(conn database.Connection) *PostgresEntryRepository {
	return &PostgresEntryRepository{conn: conn}
}

const pgEntryColumns = `
	id, user_id, date, content, mood, manual_mood,
	sentiment_score, sentiment_label, sentiment_confidence, sentiment_emotions,
	habits_completed, habits_total, habit_names,
	created_at, updated_at
`

// Save persists an entry.
func (r *PostgresEntryRepository) Save(ctx context.Context, entry *domain.Entry) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	var (
		score, completed, total            *int
		label, confidence, emotions, names *string
	)
	if s := entry.Sentiment(); s != nil {
		sc := s.Score
		lb := string(s.Label)
		cf := string(s.Confidence)
		raw, err := json.Marshal(s.Emotions)
		if err != nil {
			return err
		}
		em := string(raw)
		score, label, confidence, emotions = &sc, &lb, &cf, &em
	}
	if hs := entry.HabitSummary(); hs != nil {
		c, tt := hs.Completed, hs.Total
		raw, err := json.Marshal(hs.HabitNames)
		if err != nil {
			return err
		}
		nm := string(raw)
		completed, total, names = &c, &tt, &nm
	}

	query := `
		INSERT INTO journal_entries (` + pgEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id, date) DO UPDATE SET
			content = EXCLUDED.content,
			mood = EXCLUDED.mood,
			manual_mood = EXCLUDED.manual_mood,
			sentiment_score = EXCLUDED.sentiment_score,
			sentiment_label = EXCLUDED.sentiment_label,
			sentiment_confidence = EXCLUDED.sentiment_confidence,
			sentiment_emotions = EXCLUDED.sentiment_emotions,
			habits_completed = EXCLUDED.habits_completed,
			habits_total = EXCLUDED.habits_total,
			habit_names = EXCLUDED.habit_names,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		entry.ID(),
		entry.UserID(),
		entry.Date().Time(),
		entry.Content(),
		string(entry.Mood()),
		entry.HasManualMood(),
		score, label, confidence, emotions,
		completed, total, names,
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	return err
}

// FindByID retrieves an entry by ID, returning (nil, nil) when absent.
func (r *PostgresEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `SELECT `+pgEntryColumns+` FROM journal_entries WHERE id = $1`, id)
	return r.scanOne(row.Scan)
}

// FindByDate retrieves the entry for a user's day, (nil, nil) when absent.
func (r *PostgresEntryRepository) FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (*domain.Entry, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx,
		`SELECT `+pgEntryColumns+` FROM journal_entries WHERE user_id = $1 AND date = $2`,
		userID, date.Time())
	return r.scanOne(row.Scan)
}

// FindByUserID retrieves all entries for a user, oldest first.
func (r *PostgresEntryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	return r.queryEntries(ctx,
		`SELECT `+pgEntryColumns+` FROM journal_entries WHERE user_id = $1 ORDER BY date ASC`,
		userID)
}

// FindRange retrieves entries between two days inclusive.
func (r *PostgresEntryRepository) FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Date) ([]*domain.Entry, error) {
	return r.queryEntries(ctx,
		`SELECT `+pgEntryColumns+` FROM journal_entries WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC`,
		userID, from.Time(), to.Time())
}

// Delete removes an entry.
func (r *PostgresEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	return err
}

func (r *PostgresEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.Entry, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := r.scanOne(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PostgresEntryRepository) scanOne(scan func(dest ...any) error) (*domain.Entry, error) {
	var (
		id, userID                         uuid.UUID
		date                               time.Time
		content, mood                      string
		manualMood                         bool
		score, completed, total            *int
		label, confidence, emotions, names *string
		createdAt, updatedAt               time.Time
	)
	err := scan(&id, &userID, &date, &content, &mood, &manualMood,
		&score, &label, &confidence, &emotions,
		&completed, &total, &names,
		&createdAt, &updatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	var sentiment *domain.Sentiment
	if score != nil {
		sentiment = &domain.Sentiment{Score: *score}
		if label != nil {
			sentiment.Label = analyticsDomain.SentimentLabel(*label)
		}
		if confidence != nil {
			sentiment.Confidence = analyticsDomain.Confidence(*confidence)
		}
		if emotions != nil && *emotions != "" {
			if err := json.Unmarshal([]byte(*emotions), &sentiment.Emotions); err != nil {
				return nil, err
			}
		}
	}

	var habitSummary *domain.HabitSummary
	if total != nil {
		habitSummary = &domain.HabitSummary{Total: *total}
		if completed != nil {
			habitSummary.Completed = *completed
		}
		if names != nil && *names != "" {
			if err := json.Unmarshal([]byte(*names), &habitSummary.HabitNames); err != nil {
				return nil, err
			}
		}
	}

	return domain.RehydrateEntry(id, userID, sharedDomain.NewDate(date), content,
		analyticsDomain.Mood(mood), manualMood, sentiment, habitSummary,
		createdAt, updatedAt), nil
}
