package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/goals/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
)

// SQLiteGoalRepository implements domain.GoalRepository using SQLite.
type SQLiteGoalRepository struct {
	conn database.Connection
}

// NewSQLiteGoalRepository creates a new SQLite goal repository.
func NewSQLiteGoalRepository(conn database.Connection) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{conn: conn}
}

// Save persists a goal.
func (r *SQLiteGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	var targetDate sql.NullString
	if !goal.TargetDate().IsZero() {
		targetDate = sql.NullString{String: goal.TargetDate().String(), Valid: true}
	}

	query := `
		INSERT INTO goals (id, user_id, title, description, target_date, progress, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			target_date = excluded.target_date,
			progress = excluded.progress,
			completed = excluded.completed,
			updated_at = excluded.updated_at
	`
	_, err := exec.Exec(ctx, query,
		goal.ID().String(),
		goal.UserID().String(),
		goal.Title(),
		goal.Description(),
		targetDate,
		goal.Progress(),
		boolToInt(goal.IsCompleted()),
		goal.CreatedAt().Format(time.RFC3339),
		goal.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves a goal by ID, returning (nil, nil) when absent.
func (r *SQLiteGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `
		SELECT id, user_id, title, description, target_date, progress, completed, created_at, updated_at
		FROM goals WHERE id = ?`, id.String())
	return r.scanOne(row.Scan)
}

// FindByUserID retrieves all goals for a user.
func (r *SQLiteGoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return r.queryGoals(ctx, `
		SELECT id, user_id, title, description, target_date, progress, completed, created_at, updated_at
		FROM goals WHERE user_id = ? ORDER BY created_at ASC`, userID.String())
}

// FindOpenByUserID retrieves goals not yet completed.
func (r *SQLiteGoalRepository) FindOpenByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return r.queryGoals(ctx, `
		SELECT id, user_id, title, description, target_date, progress, completed, created_at, updated_at
		FROM goals WHERE user_id = ? AND completed = 0 ORDER BY created_at ASC`, userID.String())
}

// Delete removes a goal.
func (r *SQLiteGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `DELETE FROM goals WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteGoalRepository) queryGoals(ctx context.Context, query string, args ...any) ([]*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := r.scanOne(rows.Scan)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *SQLiteGoalRepository) scanOne(scan func(dest ...any) error) (*domain.Goal, error) {
	var (
		idStr, userIDStr, title, description string
		targetDate                           sql.NullString
		progress, completed                  int
		createdAt, updatedAt                 string
	)
	err := scan(&idStr, &userIDStr, &title, &description, &targetDate, &progress, &completed, &createdAt, &updatedAt)
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

	var target sharedDomain.Date
	if targetDate.Valid {
		if target, err = sharedDomain.ParseDate(targetDate.String); err != nil {
			return nil, err
		}
	}

	return domain.RehydrateGoal(id, userID, title, description, target, progress, completed != 0,
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
