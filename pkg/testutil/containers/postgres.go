//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"carbonledger/internal/platform/database"
	"carbonledger/migrations"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts Postgres and applies the embedded ledger schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("carbonledger_test"),
		postgres.WithUsername("ledger"),
		postgres.WithPassword("ledger_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	// The container is shared through Manager; Ryuk removes it when the test
	// process exits.
	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// LedgerTables lists every table the schema creates.
var LedgerTables = []string{
	"retirements",
	"retirement_totals",
	"credit_batches",
	"certifications",
	"revoked_certifier_addresses",
	"certifiers",
	"registry_settings",
	"listings",
	"market_settings",
	"roles",
	"projects",
	"ledger_events",
}

// TruncateTables clears the given tables.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateLedger clears every ledger table between tests and rewinds the id
// counters to 1.
func (p *PostgresContainer) TruncateLedger(ctx context.Context) error {
	if err := p.TruncateTables(ctx, LedgerTables...); err != nil {
		return err
	}
	if _, err := p.DB.ExecContext(ctx, "UPDATE ledger_counters SET value = 1"); err != nil {
		return fmt.Errorf("reset counters: %w", err)
	}
	return nil
}
