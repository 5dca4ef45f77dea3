package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// PostgresHabitRepository implements domain.HabitRepository using PostgreSQL.
type PostgresHabitRepository struct {
	conn database.Connection
}

// NewPostgresHabitRepository creates a new PostgreSQL habit repository.
func NewPostgresHabitRepository(conn database.Connection) *PostgresHabitRepository {
	return &PostgresHabitRepository{conn: conn}
}

// Save persists a habit and rewrites its completion set.
func (r *PostgresHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	query := `
		INSERT INTO habits (id, user_id, name, category, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			archived = EXCLUDED.archived,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		habit.ID(),
		habit.UserID(),
		habit.Name(),
		habit.Category(),
		habit.IsArchived(),
		habit.CreatedAt(),
		habit.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM habit_completions WHERE habit_id = $1`, habit.ID()); err != nil {
		return err
	}
	for _, date := range habit.CompletedDates().Sorted() {
		_, err := exec.Exec(ctx,
			`INSERT INTO habit_completions (habit_id, date) VALUES ($1, $2)`,
			habit.ID(), date.Time())
		if err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a habit by ID, returning (nil, nil) when absent.
func (r *PostgresHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	query := `
		SELECT id, user_id, name, category, archived, created_at, updated_at
		FROM habits WHERE id = $1
	`
	habit, err := r.rehydrate(ctx, exec, exec.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return habit, nil
}

// FindByUserID retrieves all habits for a user, including archived ones.
func (r *PostgresHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	query := `
		SELECT id, user_id, name, category, archived, created_at, updated_at
		FROM habits WHERE user_id = $1 ORDER BY created_at ASC
	`
	return r.queryHabits(ctx, query, userID)
}

// FindActiveByUserID retrieves non-archived habits for a user.
func (r *PostgresHabitRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	query := `
		SELECT id, user_id, name, category, archived, created_at, updated_at
		FROM habits WHERE user_id = $1 AND archived = FALSE ORDER BY created_at ASC
	`
	return r.queryHabits(ctx, query, userID)
}

// Delete removes a habit and its completions.
func (r *PostgresHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	if _, err := exec.Exec(ctx, `DELETE FROM habit_completions WHERE habit_id = $1`, id); err != nil {
		return err
	}
	_, err := exec.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	return err
}

func (r *PostgresHabitRepository) queryHabits(ctx context.Context, query string, args ...any) ([]*domain.Habit, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		habit, err := r.rehydrate(ctx, exec, rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *PostgresHabitRepository) rehydrate(ctx context.Context, exec database.Executor, scan func(dest ...any) error) (*domain.Habit, error) {
	var (
		id, userID           uuid.UUID
		name, category       string
		archived             bool
		createdAt, updatedAt time.Time
	)
	if err := scan(&id, &userID, &name, &category, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	completed, err := r.loadCompletions(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateHabit(id, userID, name, category, archived, createdAt, updatedAt, completed), nil
}

func (r *PostgresHabitRepository) loadCompletions(ctx context.Context, exec database.Executor, habitID uuid.UUID) (sharedDomain.DateSet, error) {
	rows, err := exec.Query(ctx, `SELECT date FROM habit_completions WHERE habit_id = $1`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := sharedDomain.NewDateSet()
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		set.Add(sharedDomain.NewDate(d))
	}
	return set, rows.Err()
}
