package persist

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// migrationFiles lists the embedded leaderboard and session schema files.
func migrationFiles() ([]string, error) {
	return fs.Glob(migrations, migrationsDir+"/*.sql")
}

// Migrate brings the leaderboard and session tables up to the latest
// embedded schema and returns the resulting schema version.
func (db *DB) Migrate(ctx context.Context) (int64, error) {
	files, err := migrationFiles()
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("set dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	before, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return before, fmt.Errorf("migrate leaderboard schema from version %d: %w", before, err)
	}
	after, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return before, fmt.Errorf("read schema version: %w", err)
	}

	db.log.Info("leaderboard schema ready",
		zap.Int64("from_version", before),
		zap.Int64("version", after),
		zap.Int("embedded", len(files)),
	)
	return after, nil
}
