package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kenney-asteroids/sim/internal/config"
	"github.com/kenney-asteroids/sim/internal/gameplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openTestDB connects to the database named by ASTEROIDS_TEST_DSN and
// migrates it. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("ASTEROIDS_TEST_DSN")
	if dsn == "" {
		t.Skip("ASTEROIDS_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	version, err := db.Migrate(ctx)
	require.NoError(t, err)
	assert.Positive(t, version)
	_, err = db.Pool.Exec(ctx, `TRUNCATE leaderboard, sessions`)
	require.NoError(t, err)
	return db
}

func TestMigrationFiles_AreEmbedded(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/00001_leaderboard.sql")
}

func TestNewDB_RejectsBadDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.DatabaseConfig{DSN: "postgres://user@localhost:notaport/db"}, nil)
	assert.ErrorContains(t, err, "parse leaderboard dsn")
}

func TestLeaderboardRepo_TopOrdersByScore(t *testing.T) {
	db := openTestDB(t)
	repo := NewLeaderboardRepo(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for _, e := range []gameplay.LeaderboardEntry{
		{Name: "ann", Score: 100, Played: 90 * time.Second, Date: now},
		{Name: "bob", Score: 300, Played: 2 * time.Minute, Date: now},
		{Name: "cid", Score: 200, Played: time.Minute, Date: now},
	} {
		require.NoError(t, repo.Insert(ctx, e))
	}

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].Name)
	assert.Equal(t, 2*time.Minute, top[0].Played)
	assert.Equal(t, "cid", top[1].Name)
}

func TestSessionRepo_RecordIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepo(db)
	ctx := context.Background()

	o := gameplay.Outcome{SessionID: uuid.New(), Score: 45, Played: 3 * time.Second}
	require.NoError(t, repo.Record(ctx, o))
	require.NoError(t, repo.Record(ctx, o))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
