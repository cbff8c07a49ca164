package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// PostgresStore persists ledger events in the ledger_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	fields, err := json.Marshal(event.Fields)
	if err != nil {
		return fmt.Errorf("encode event fields: %w", err)
	}
	_, err = tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO ledger_events (id, name, occurred_at, actor, request_id, fields)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, event.ID, string(event.Name), event.Timestamp, string(event.Actor), event.RequestID, fields)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > DefaultCapacity {
		limit = DefaultCapacity
	}
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, name, occurred_at, actor, request_id, fields
		FROM ledger_events
		ORDER BY seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e      Event
			name   string
			actor  string
			fields []byte
		)
		if err := rows.Scan(&e.ID, &name, &e.Timestamp, &actor, &e.RequestID, &fields); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		e.Name = EventName(name)
		e.Actor = domain.Address(actor)
		if err := json.Unmarshal(fields, &e.Fields); err != nil {
			return nil, fmt.Errorf("decode event fields: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
