package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kenney-asteroids/sim/internal/config"
	"go.uber.org/zap"
)

// pingTimeout bounds the startup reachability check.
const pingTimeout = 5 * time.Second

// DB is the PostgreSQL store behind the high-score leaderboard and the
// finished-session log. It is optional: the simulation runs without it and
// only qualifying scores ever reach it.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// NewDB opens the leaderboard pool described by cfg and checks that the
// server answers before returning.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse leaderboard dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 && int32(cfg.MaxIdleConns) <= poolCfg.MaxConns {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open leaderboard pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("leaderboard store unreachable at %s: %w", poolCfg.ConnConfig.Host, err)
	}

	log.Info("leaderboard store connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &DB{Pool: pool, log: log}, nil
}

// Close releases the pool. Pending leaderboard writes are the caller's to
// finish first.
func (db *DB) Close() {
	stat := db.Pool.Stat()
	db.Pool.Close()
	db.log.Debug("leaderboard store closed",
		zap.Int32("acquired_conns", stat.AcquiredConns()),
		zap.Int64("total_acquires", stat.AcquireCount()),
	)
}
