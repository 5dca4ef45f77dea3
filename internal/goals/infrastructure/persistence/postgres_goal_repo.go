package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/goals/domain"
	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
	"github.com/tendhq/tend/internal/shared/infrastructure/database"
)

// PostgresGoalRepository implements domain.GoalRepository using PostgreSQL.
type PostgresGoalRepository struct {
	conn database.Connection
}

// NewPostgresGoalRepository creates a new PostgreSQL goal repository.
func NewPostgresGoalRepository(conn database.Connection) *PostgresGoalRepository {
	return &PostgresGoalRepository{conn: conn}
}

// Save persists a goal.
func (r *PostgresGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	var targetDate *time.Time
	if !goal.TargetDate().IsZero() {
		t := goal.TargetDate().Time()
		targetDate = &t
	}

	query := `
		INSERT INTO goals (id, user_id, title, description, target_date, progress, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			target_date = EXCLUDED.target_date,
			progress = EXCLUDED.progress,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		goal.ID(),
		goal.UserID(),
		goal.Title(),
		goal.Description(),
		targetDate,
		goal.Progress(),
		goal.IsCompleted(),
		goal.CreatedAt(),
		goal.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a goal by ID, returning (nil, nil) when absent.
func (r *PostgresGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `
		SELECT id, user_id, title, description, target_date, progress, completed, created_at, updated_at
		FROM goals WHERE id = $1`, id)
	return r.scanOne(row.Scan)
}

// FindByUserID retrieves all goals for a user.
func (r *PostgresGoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return r.queryGoals(ctx, `
		SELECT id, user_id, title, description, target_date, progress, completed, created_at, updated_at
		FROM goals WHERE user_id = $1 ORDER BY created_at ASC`, userID)
}

// FindOpenByUserID retrieves goals not yet completed.
func (r *PostgresGoalRepository) FindOpenByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return r.queryGoals(ctx, `
		SELECT id, user_id, title, description, target_date, progress, completed, created_at, updated_at
		FROM goals WHERE user_id = $1 AND completed = FALSE ORDER BY created_at ASC`, userID)
}

// Delete removes a goal.
func (r *PostgresGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	return err
}

func (r *PostgresGoalRepository) queryGoals(ctx context.Context, query string, args ...any) ([]*domain.Goal, error) {
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

func (r *PostgresGoalRepository) scanOne(scan func(dest ...any) error) (*domain.Goal, error) {
	var (
		id, userID           uuid.UUID
		title, description   string
		targetDate           *time.Time
		progress             int
		completed            bool
		createdAt, updatedAt time.Time
	)
	err := scan(&id, &userID, &title, &description, &targetDate, &progress, &completed, &createdAt, &updatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	var target sharedDomain.Date
	if targetDate != nil {
		target = sharedDomain.NewDate(*targetDate)
	}

	return domain.RehydrateGoal(id, userID, title, description, target, progress, completed,
		createdAt, updatedAt), nil
}
