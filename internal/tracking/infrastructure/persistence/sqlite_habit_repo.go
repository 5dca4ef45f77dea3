package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// SQLiteHabitRepository implements domain.HabitRepository using SQLite.
type SQLiteHabitRepository struct {
	conn database.Connection
}

// NewSQLiteHabitRepository creates a new SQLite habit repository.
func NewSQLiteHabitRepository(conn database.Connection) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{conn: conn}
}

// Save persists a habit and rewrites its completion set.
func (r *SQLiteHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	query := `
		INSERT INTO habits (id, user_id, name, category, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			archived = excluded.archived,
			updated_at = excluded.updated_at
	`
	_, err := exec.Exec(ctx, query,
		habit.ID().String(),
		habit.UserID().String(),
		habit.Name(),
		habit.Category(),
		boolToInt(habit.IsArchived()),
		habit.CreatedAt().Format(time.RFC3339),
		habit.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM habit_completions WHERE habit_id = ?`, habit.ID().String()); err != nil {
		return err
	}
	for _, date := range habit.CompletedDates().Sorted() {
		_, err := exec.Exec(ctx,
			`INSERT INTO habit_completions (habit_id, date) VALUES (?, ?)`,
			habit.ID().String(), date.String())
		if err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a habit by ID, returning (nil, nil) when absent.
func (r *SQLiteHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	query := `
		SELECT id, user_id, name, category, archived, created_at, updated_at
		FROM habits WHERE id = ?
	`
	habit, err := r.scanHabit(ctx, exec, exec.QueryRow(ctx, query, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return habit, nil
}

// FindByUserID retrieves all habits for a user, including archived ones.
func (r *SQLiteHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	query := `
		SELECT id, user_id, name, category, archived, created_at, updated_at
		FROM habits WHERE user_id = ? ORDER BY created_at ASC
	`
	return r.queryHabits(ctx, query, userID.String())
}

// FindActiveByUserID retrieves non-archived habits for a user.
func (r *SQLiteHabitRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	query := `
		SELECT id, user_id, name, category, archived, created_at, updated_at
		FROM habits WHERE user_id = ? AND archived = 0 ORDER BY created_at ASC
	`
	return r.queryHabits(ctx, query, userID.String())
}

// Delete removes a habit and its completions.
func (r *SQLiteHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	if _, err := exec.Exec(ctx, `DELETE FROM habit_completions WHERE habit_id = ?`, id.String()); err != nil {
		return err
	}
	_, err := exec.Exec(ctx, `DELETE FROM habits WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteHabitRepository) queryHabits(ctx context.Context, query string, args ...any) ([]*domain.Habit, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		habit, err := r.scanHabitRow(ctx, exec, rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *SQLiteHabitRepository) scanHabit(ctx context.Context, exec database.Executor, row database.Row) (*domain.Habit, error) {
	return r.rehydrate(ctx, exec, row.Scan)
}

func (r *SQLiteHabitRepository) scanHabitRow(ctx context.Context, exec database.Executor, rows database.Rows) (*domain.Habit, error) {
	return r.rehydrate(ctx, exec, rows.Scan)
}

func (r *SQLiteHabitRepository) rehydrate(ctx context.Context, exec database.Executor, scan func(dest ...any) error) (*domain.Habit, error) {
	var (
		idStr, userIDStr, name, category string
		archived                         int
		createdAt, updatedAt             string
	)
	if err := scan(&idStr, &userIDStr, &name, &category, &archived, &createdAt, &updatedAt); err != nil {
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

	completed, err := r.loadCompletions(ctx, exec, idStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateHabit(id, userID, name, category, archived != 0,
		parseTimestamp(createdAt), parseTimestamp(updatedAt), completed), nil
}

func (r *SQLiteHabitRepository) loadCompletions(ctx context.Context, exec database.Executor, habitID string) (sharedDomain.DateSet, error) {
	rows, err := exec.Query(ctx, `SELECT date FROM habit_completions WHERE habit_id = ?`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parseDates(dates), nil
}
