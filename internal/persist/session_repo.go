package persist

import (
	"context"
	"fmt"

	"github.com/kenney-asteroids/sim/internal/gameplay"
)

// SessionRepo records the outcome of every finished session.
type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Record writes o. Recording the same session twice is a no-op.
func (r *SessionRepo) Record(ctx context.Context, o gameplay.Outcome) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO sessions (session_id, score, played_ms, high_score)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id) DO NOTHING`,
		o.SessionID, o.Score, o.Played.Milliseconds(), o.HighScore,
	)
	if err != nil {
		return fmt.Errorf("record session %s: %w", o.SessionID, err)
	}
	return nil
}

// Count returns the number of recorded sessions.
func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
