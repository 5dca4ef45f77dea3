package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	analyticsDomain "github.com/tendhq/tend/internal/analytics/domain"
	"github.com/tendhq/tend/internal/journal/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
)

// SQLiteEntryRepository implements domain.EntryRepository using SQLite.
// The user_id+date pair is unique; sentiment and habit snapshot columns
// are nullable.
type SQLiteEntryRepository struct {
	conn database.Connection
}

// NewSQLiteEntryRepository creates a new SQLite entry repository.
func NewSQLiteEntryRepository(conn database.Connection) *SQLiteEntryRepository {
	return &SQLiteEntryRepository{conn: conn}
}

const sqliteEntryColumns = `
	id, user_id, date, content, mood, manual_mood,
	sentiment_score, sentiment_label, sentiment_confidence, sentiment_emotions,
	habits_completed, habits_total, habit_names,
	created_at, updated_at
`

// Save persists an entry.
func (r *SQLiteEntryRepository) Save(ctx context.Context, entry *domain.Entry) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	var (
		score      sql.NullInt64
		label      sql.NullString
		confidence sql.NullString
		emotions   sql.NullString
		completed  sql.NullInt64
		total      sql.NullInt64
		names      sql.NullString
	)
	if s := entry.Sentiment(); s != nil {
		score = sql.NullInt64{Int64: int64(s.Score), Valid: true}
		label = sql.NullString{String: string(s.Label), Valid: true}
		confidence = sql.NullString{String: string(s.Confidence), Valid: true}
		raw, err := json.Marshal(s.Emotions)
		if err != nil {
			return err
		}
		emotions = sql.NullString{String: string(raw), Valid: true}
	}
	if hs := entry.HabitSummary(); hs != nil {
		completed = sql.NullInt64{Int64: int64(hs.Completed), Valid: true}
		total = sql.NullInt64{Int64: int64(hs.Total), Valid: true}
		raw, err := json.Marshal(hs.HabitNames)
		if err != nil {
			return err
		}
		names = sql.NullString{String: string(raw), Valid: true}
	}

	query := `
		INSERT INTO journal_entries (` + sqliteEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			content = excluded.content,
			mood = excluded.mood,
			manual_mood = excluded.manual_mood,
			sentiment_score = excluded.sentiment_score,
			sentiment_label = excluded.sentiment_label,
			sentiment_confidence = excluded.sentiment_confidence,
			sentiment_emotions = excluded.sentiment_emotions,
			habits_completed = excluded.habits_completed,
			habits_total = excluded.habits_total,
			habit_names = excluded.habit_names,
			updated_at = excluded.updated_at
	`
	_, err := exec.Exec(ctx, query,
		entry.ID().String(),
		entry.UserID().String(),
		entry.Date().String(),
		entry.Content(),
		string(entry.Mood()),
		boolToInt(entry.HasManualMood()),
		score, label, confidence, emotions,
		completed, total, names,
		entry.CreatedAt().Format(time.RFC3339),
		entry.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves an entry by ID, returning (nil, nil) when absent.
func (r *SQLiteEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `SELECT `+sqliteEntryColumns+` FROM journal_entries WHERE id = ?`, id.String())
	return r.scanOne(row.Scan)
}

// FindByDate retrieves the entry for a user's day, (nil, nil) when absent.
func (r *SQLiteEntryRepository) FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.Date) (*domain.Entry, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx,
		`SELECT `+sqliteEntryColumns+` FROM journal_entries WHERE user_id = ? AND date = ?`,
		userID.String(), date.String())
	return r.scanOne(row.Scan)
}

// FindByUserID retrieves all entries for a user, oldest first.
func (r *SQLiteEntryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	return r.queryEntries(ctx,
		`SELECT `+sqliteEntryColumns+` FROM journal_entries WHERE user_id = ? ORDER BY date ASC`,
		userID.String())
}

// FindRange retrieves entries between two days inclusive.
func (r *SQLiteEntryRepository) FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Date) ([]*domain.Entry, error) {
	return r.queryEntries(ctx,
		`SELECT `+sqliteEntryColumns+` FROM journal_entries WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date ASC`,
		userID.String(), from.String(), to.String())
}

// Delete removes an entry.
func (r *SQLiteEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `DELETE FROM journal_entries WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.Entry, error) {
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

func (r *SQLiteEntryRepository) scanOne(scan func(dest ...any) error) (*domain.Entry, error) {
	var (
		idStr, userIDStr, dateStr, content, mood string
		manualMood                               int
		score, completed, total                  sql.NullInt64
		label, confidence, emotions, names       sql.NullString
		createdAt, updatedAt                     string
	)
	err := scan(&idStr, &userIDStr, &dateStr, &content, &mood, &manualMood,
		&score, &label, &confidence, &emotions,
		&completed, &total, &names,
		&createdAt, &updatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	date, err := sharedDomain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	var sentiment *domain.Sentiment
	if score.Valid {
		sentiment = &domain.Sentiment{
			Score:      int(score.Int64),
			Label:      analyticsDomain.SentimentLabel(label.String),
			Confidence: analyticsDomain.Confidence(confidence.String),
		}
		if emotions.Valid && emotions.String != "" {
			if err := json.Unmarshal([]byte(emotions.String), &sentiment.Emotions); err != nil {
				return nil, err
			}
		}
	}

	var habitSummary *domain.HabitSummary
	if total.Valid {
		habitSummary = &domain.HabitSummary{
			Completed: int(completed.Int64),
			Total:     int(total.Int64),
		}
		if names.Valid && names.String != "" {
			if err := json.Unmarshal([]byte(names.String), &habitSummary.HabitNames); err != nil {
				return nil, err
			}
		}
	}

	return domain.RehydrateEntry(id, userID, date, content,
		analyticsDomain.Mood(mood), manualMood != 0, sentiment, habitSummary,
		parseTimestamp(createdAt), parseTimestamp(updatedAt)), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
