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

// SQLiteRoutineRepository implements domain.RoutineRepository using SQLite.
// Steps are stored as a JSON array in a single column.
type SQLiteRoutineRepository struct {
	conn database.Connection
}

// NewSQLiteRoutineRepository creates a new SQLite routine repository.
func NewSQLiteRoutineRepository(conn database.Connection) *SQLiteRoutineRepository {
	return &SQLiteRoutineRepository{conn: conn}
}

// Save persists a routine and rewrites its completion set.
func (r *SQLiteRoutineRepository) Save(ctx context.Context, routine *domain.Routine) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	steps, err := json.Marshal(routine.Steps())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO routines (id, user_id, name, type, steps, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			steps = excluded.steps,
			archived = excluded.archived,
			updated_at = excluded.updated_at
	`
	_, err = exec.Exec(ctx, query,
		routine.ID().String(),
		routine.UserID().String(),
		routine.Name(),
		string(routine.Type()),
		string(steps),
		boolToInt(routine.IsArchived()),
		routine.CreatedAt().Format(time.RFC3339),
		routine.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM routine_completions WHERE routine_id = ?`, routine.ID().String()); err != nil {
		return err
	}
	for _, date := range routine.CompletedDates().Sorted() {
		_, err := exec.Exec(ctx,
			`INSERT INTO routine_completions (routine_id, date) VALUES (?, ?)`,
			routine.ID().String(), date.String())
		if err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a routine by ID, returning (nil, nil) when absent.
func (r *SQLiteRoutineRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	query := `
		SELECT id, user_id, name, type, steps, archived, created_at, updated_at
		FROM routines WHERE id = ?
	`
	routine, err := r.rehydrate(ctx, exec, exec.QueryRow(ctx, query, id.String()).Scan)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return routine, nil
}

// FindByUserID retrieves all routines for a user.
func (r *SQLiteRoutineRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, type, steps, archived, created_at, updated_at
		FROM routines WHERE user_id = ? ORDER BY created_at ASC
	`
	return r.queryRoutines(ctx, query, userID.String())
}

// FindActiveByUserID retrieves non-archived routines for a user.
func (r *SQLiteRoutineRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, type, steps, archived, created_at, updated_at
		FROM routines WHERE user_id = ? AND archived = 0 ORDER BY created_at ASC
	`
	return r.queryRoutines(ctx, query, userID.String())
}

// Delete removes a routine and its completions.
func (r *SQLiteRoutineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	if _, err := exec.Exec(ctx, `DELETE FROM routine_completions WHERE routine_id = ?`, id.String()); err != nil {
		return err
	}
	_, err := exec.Exec(ctx, `DELETE FROM routines WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteRoutineRepository) queryRoutines(ctx context.Context, query string, args ...any) ([]*domain.Routine, error) {
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

func (r *SQLiteRoutineRepository) rehydrate(ctx context.Context, exec database.Executor, scan func(dest ...any) error) (*domain.Routine, error) {
	var (
		idStr, userIDStr, name, routineType, stepsJSON string
		archived                                       int
		createdAt, updatedAt                           string
	)
	if err := scan(&idStr, &userIDStr, &name, &routineType, &stepsJSON, &archived, &createdAt, &updatedAt); err != nil {
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

	var steps []string
	if stepsJSON != "" {
		if err := json.Unmarshal([]byte(stepsJSON), &steps); err != nil {
			return nil, err
		}
	}

	completed, err := r.loadCompletions(ctx, exec, idStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateRoutine(id, userID, name, domain.RoutineType(routineType), steps,
		archived != 0, parseTimestamp(createdAt), parseTimestamp(updatedAt), completed), nil
}

func (r *SQLiteRoutineRepository) loadCompletions(ctx context.Context, exec database.Executor, routineID string) (sharedDomain.DateSet, error) {
	rows, err := exec.Query(ctx, `SELECT date FROM routine_completions WHERE routine_id = ?`, routineID)
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
