package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/wordbank/internal/config"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/phrazzld/wordbank/internal/platform/postgres"
	"github.com/phrazzld/wordbank/internal/redact"
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv names an existing database to test against instead of a container.
const DatabaseURLEnv = "WORDBANK_TEST_DATABASE_URL"

// SetupTimeout bounds container start-up and migration.
const SetupTimeout = 2 * time.Minute

// Open returns a migrated database for t. Cleanup is registered with t.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), SetupTimeout)
	defer cancel()

	url := os.Getenv(DatabaseURLEnv)
	external := url != ""
	if !external {
		url = startContainer(ctx, t)
	}

	db, err := postgres.Open(ctx, config.DatabaseConfig{
		URL:          url,
		MaxOpenConns: 5,
		MaxIdleConns: 5,
	})
	require.NoError(t, err, "connect to %s", redact.String(url))
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	log, _ := logger.NewTestLogger()
	migrator, err := postgres.NewMigrator(db, log)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(ctx), "apply migrations")

	if external {
		Truncate(t, db)
		t.Cleanup(func() { Truncate(t, db) })
	}

	return db
}

// Truncate empties every vocabulary table and resets their id sequences.
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(),
		"TRUNCATE words, examples, example_generation_queue RESTART IDENTITY CASCADE")
	require.NoError(t, err, "truncate tables")
}

// URL builds a postgres connection string for a local server.
func URL(user, password, host, port, dbname string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
}
