package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/shared/infrastructure/database"
)

// PostgresGlowStore persists seen glow-moment ids in PostgreSQL.
type PostgresGlowStore struct {
	conn database.Connection
}

// NewPostgresGlowStore creates a new PostgreSQL glow store.
func NewPostgresGlowStore(conn database.Connection) *PostgresGlowStore {
	return &PostgresGlowStore{conn: conn}
}

// SeenIDs returns the ids already shown to the user.
func (s *PostgresGlowStore) SeenIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	rows, err := exec.Query(ctx, `SELECT glow_id FROM glow_seen WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seen[id] = true
	}
	return seen, rows.Err()
}

// MarkSeen records ids as shown. Already-recorded ids are ignored.
func (s *PostgresGlowStore) MarkSeen(ctx context.Context, userID uuid.UUID, ids []string) error {
	exec := database.ExecutorFromContext(ctx, s.conn)

	now := time.Now()
	for _, id := range ids {
		_, err := exec.Exec(ctx,
			`INSERT INTO glow_seen (user_id, glow_id, seen_at) VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, glow_id) DO NOTHING`,
			userID, id, now)
		if err != nil {
			return err
		}
	}
	return nil
}
