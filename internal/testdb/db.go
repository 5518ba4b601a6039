package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

var (
	sharedOnce sync.Once
	sharedDB   *sql.DB
	sharedErr  error
)

// IsIntegrationTestEnvironment returns true if the DATABASE_URL environment
// variable is set, indicating that integration tests can be run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns DATABASE_URL, falling back to KANBAN_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("KANBAN_TEST_DB_URL")
}

// OpenTestDB returns a migrated shared connection, or skips the test when no
// database is configured.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("DATABASE_URL not set; skipping database integration test")
	}

	sharedOnce.Do(func() {
		sharedDB, sharedErr = open(GetTestDatabaseURL())
	})
	require.NoError(t, sharedErr, "failed to prepare test database")
	return sharedDB
}

func open(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}

	if err := postgres.Migrate(context.Background(), db, "up", nil); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return db, nil
}

// WithTx runs fn inside a transaction that is rolled back afterwards,
// including when fn fails the test or panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", rbErr)
		}
	}()

	fn(t, tx)
}
