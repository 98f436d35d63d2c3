package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/kenney-asteroids/sim/internal/gameplay"
)

// LeaderboardRepo stores high score entries.
type LeaderboardRepo struct {
	db *DB
}

func NewLeaderboardRepo(db *DB) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

// Top returns the best limit entries, highest score first, oldest first on ties.
func (r *LeaderboardRepo) Top(ctx context.Context, limit int) ([]gameplay.LeaderboardEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT name, score, played_ms, scored_at
		 FROM leaderboard ORDER BY score DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []gameplay.LeaderboardEntry
	for rows.Next() {
		var e gameplay.LeaderboardEntry
		var playedMs int64
		if err := rows.Scan(&e.Name, &e.Score, &playedMs, &e.Date); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		e.Played = time.Duration(playedMs) * time.Millisecond
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return out, nil
}

// Insert stores one entry.
func (r *LeaderboardRepo) Insert(ctx context.Context, e gameplay.LeaderboardEntry) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO leaderboard (name, score, played_ms, scored_at) VALUES ($1, $2, $3, $4)`,
		e.Name, e.Score, e.Played.Milliseconds(), e.Date,
	)
	if err != nil {
		return fmt.Errorf("insert leaderboard: %w", err)
	}
	return nil
}
