package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
	"github.com/tendhq/tend/internal/tracking/domain"
)

// PostgresRoutineRepository implements domain.RoutineRepository using PostgreSQL.
type PostgresRoutineRepository struct {
	conn database.Connection
}

// NewPostgresRoutineRepository creates a new PostgreSQL routine repository.
func NewPostgresRoutineRepository(conn database.Connection) *PostgresRoutineRepository {
	return &PostgresRoutineRepository{conn: conn}
}

// Save persists a routine and rewrites its completion set.
func (r *PostgresRoutineRepository) Save(ctx context.Context, routine *domain.Routine) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	steps, err := json.Marshal(routine.Steps())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO routines (id, user_id, name, type, steps, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			steps = EXCLUDED.steps,
			archived = EXCLUDED.archived,
			updated_at = EXCLUDED.updated_at
	`
	_, err = exec.Exec(ctx, query,
		routine.ID(),
		routine.UserID(),
		routine.Name(),
		string(routine.Type()),
		string(steps),
		routine.IsArchived(),
		routine.CreatedAt(),
		routine.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM routine_completions WHERE routine_id = $1`, routine.ID()); err != nil {
		return err
	}
	for _, date := range routine.CompletedDates().Sorted() {
		_, err := exec.Exec(ctx,
			`INSERT INTO routine_completions (routine_id, date) VALUES ($1, $2)`,
			routine.ID(), date.Time())
		if err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a routine by ID, returning (nil, nil) when absent.
func (r *PostgresRoutineRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	query := `
		SELECT id, user_id, name, type, steps, archived, created_at, updated_at
		FROM routines WHERE id = $1
	`
	routine, err := r.rehydrate(ctx, exec, exec.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return routine, nil
}

// FindByUserID retrieves all routines for a user.
func (r *PostgresRoutineRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, type, steps, archived, created_at, updated_at
		FROM routines WHERE user_id = $1 ORDER BY created_at ASC
	`
	return r.queryRoutines(ctx, query, userID)
}

// FindActiveByUserID retrieves non-archived routines for a user.
func (r *PostgresRoutineRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, type, steps, archived, created_at, updated_at
		FROM routines WHERE user_id = $1 AND archived = FALSE ORDER BY created_at ASC
	`
	return r.queryRoutines(ctx, query, userID)
}

// Delete removes a routine and its completions.
func (r *PostgresRoutineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	if _, err := exec.Exec(ctx, `DELETE FROM routine_completions WHERE routine_id = $1`, id); err != nil {
		return err
	}
	_, err := exec.Exec(ctx, `DELETE FROM routines WHERE id = $1`, id)
	return err
}

func (r *PostgresRoutineRepository) queryRoutines(ctx context.Context, query string, args ...any) ([]*domain.Routine, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []*domain.Routine
	for rows.Next() {
		routine, err := r.rehydrate(ctx, exec, rows.Scan)
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

func (r *PostgresRoutineRepository) rehydrate(ctx context.Context, exec database.Executor, scan func(dest ...any) error) (*domain.Routine, error) {
	var (
		id, userID                  uuid.UUID
		name, routineType, stepsRaw string
		archived                    bool
		createdAt, updatedAt        time.Time
	)
	if err := scan(&id, &userID, &name, &routineType, &stepsRaw, &archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var steps []string
	if stepsRaw != "" {
		if err := json.Unmarshal([]byte(stepsRaw), &steps); err != nil {
			return nil, err
		}
	}

	completed, err := r.loadCompletions(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateRoutine(id, userID, name, domain.RoutineType(routineType), steps,
		archived, createdAt, updatedAt, completed), nil
}

func (r *PostgresRoutineRepository) loadCompletions(ctx context.Context, exec database.Executor, routineID uuid.UUID) (sharedDomain.DateSet, error) {
	rows, err := exec.Query(ctx, `SELECT date FROM routine_completions WHERE routine_id = $1`, routineID)
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
