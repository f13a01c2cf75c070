// Package testutil provides helpers for database-backed integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/litshelf/litshelf/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates all catalog tables for tests.
// Books reference novelists, so migrations apply down in reverse order
// and up in forward order.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	migrations := []string{
		"000001_accounts",
		"000002_novelists",
		"000003_books",
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		if err := applyMigration(ctx, pool, root, migrations[i]+".down.sql"); err != nil {
			return err
		}
	}
	for _, name := range migrations {
		if err := applyMigration(ctx, pool, root, name+".up.sql"); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, root, file string) error {
	sql, err := os.ReadFile(filepath.Join(root, "migrations", file))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", file, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestAccount creates an account with unique credentials.
func NewTestAccount(t testing.TB, prefix string) *model.Account {
	t.Helper()
	n := time.Now().UnixNano()
	return &model.Account{
		Username:     fmt.Sprintf("%s-%d", prefix, n),
		Email:        fmt.Sprintf("%s-%d@example.com", prefix, n),
		PasswordHash: fmt.Sprintf("hash-%d", n),
	}
}

// NewTestNovelist creates a novelist with a unique name.
func NewTestNovelist(t testing.TB, prefix string) *model.Novelist {
	t.Helper()
	return &model.Novelist{
		Name: fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()),
	}
}

// NewTestBook creates a book with a unique title referencing the
// given novelist.
func NewTestBook(t testing.TB, prefix string, novelistID int64) *model.Book {
	t.Helper()
	return &model.Book{
		Year:       "1984",
		Title:      fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()),
		NovelistID: novelistID,
	}
}
