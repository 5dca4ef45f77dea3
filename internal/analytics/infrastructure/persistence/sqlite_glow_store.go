package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/shared/infrastructure/database"
)

// SQLiteGlowStore persists seen glow-moment ids in SQLite.
type SQLiteGlowStore struct {
	conn database.Connection
}

// NewSQLiteGlowStore creates a new SQLite glow store.
func NewSQLiteGlowStore(conn database.Connection) *SQLiteGlowStore {
	return &SQLiteGlowStore{conn: conn}
}

// SeenIDs returns the ids already shown to the user.
func (s *SQLiteGlowStore) SeenIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	exec := database.ExecutorFromContext(ctx, s.conn)

	rows, err := exec.Query(ctx, `SELECT glow_id FROM glow_seen WHERE user_id = ?`, userID.String())
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
func (s *SQLiteGlowStore) MarkSeen(ctx context.Context, userID uuid.UUID, ids []string) error {
	exec := database.ExecutorFromContext(ctx, s.conn)

	now := time.Now().Format(time.RFC3339)
	for _, id := range ids {
		_, err := exec.Exec(ctx,
			`INSERT INTO glow_seen (user_id, glow_id, seen_at) VALUES (?, ?, ?)
			 ON CONFLICT(user_id, glow_id) DO NOTHING`,
			userID.String(), id, now)
		if err != nil {
			return err
		}
	}
	return nil
}
