package access

import (
	"context"
	"database/sql"
	"fmt"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// PostgresStore persists role membership in the roles table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, principal domain.Address, role domain.Role) (bool, error) {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO roles (principal, role)
		VALUES ($1, $2)
		ON CONFLICT (principal, role) DO NOTHING
	`, string(principal), string(role))
	if err != nil {
		return false, fmt.Errorf("grant role: %w", err)
	}
	return affected(res)
}

func (s *PostgresStore) Remove(ctx context.Context, principal domain.Address, role domain.Role) (bool, error) {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM roles WHERE principal = $1 AND role = $2`, string(principal), string(role))
	if err != nil {
		return false, fmt.Errorf("revoke role: %w", err)
	}
	return affected(res)
}

func (s *PostgresStore) Has(ctx context.Context, principal domain.Address, role domain.Role) (bool, error) {
	var exists bool
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE principal = $1 AND role = $2)`,
		string(principal), string(role)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByPrincipal(ctx context.Context, principal domain.Address) ([]domain.Role, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT role FROM roles WHERE principal = $1 ORDER BY role`, string(principal))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	roles := []domain.Role{}
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, domain.Role(role))
	}
	return roles, rows.Err()
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
