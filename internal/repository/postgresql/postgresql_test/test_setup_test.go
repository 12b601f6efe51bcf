package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-web-go/internal/repository/postgresql"
)

// TestDatabaseSetup initializes the test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when the variable is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}
	if err := postgresql.EnsureSessionSchema(ctx, db); err != nil {
		db.Close()
		return nil, true, err
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// TruncateAllTables removes all rows from the tables the tests touch
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"web_sessions",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
