package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carbonledger/internal/certification/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// PostgresStore persists the registry in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindCertifier(ctx context.Context, name string) (*models.Certifier, error) {
	var (
		c     = models.Certifier{Name: name}
		bound string
	)
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT authorized, bound_address, ever_authorized FROM certifiers WHERE name = $1
	`, name).Scan(&c.Authorized, &bound, &c.EverAuthorized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find certifier: %w", err)
	}
	c.BoundAddress = domain.Address(bound)
	return &c, nil
}

func (s *PostgresStore) SaveCertifier(ctx context.Context, c *models.Certifier) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO certifiers (name, authorized, bound_address, ever_authorized)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			authorized = EXCLUDED.authorized,
			bound_address = EXCLUDED.bound_address,
			ever_authorized = EXCLUDED.ever_authorized
	`, c.Name, c.Authorized, string(c.BoundAddress), c.EverAuthorized)
	if err != nil {
		return fmt.Errorf("save certifier: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsRevoked(ctx context.Context, name string, addr domain.Address) (bool, error) {
	var revoked bool
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM revoked_certifier_addresses WHERE name = $1 AND address = $2)
	`, name, string(addr)).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return revoked, nil
}

func (s *PostgresStore) MarkRevoked(ctx context.Context, name string, addr domain.Address) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO revoked_certifier_addresses (name, address) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, name, string(addr))
	if err != nil {
		return fmt.Errorf("mark revoked: %w", err)
	}
	return nil
}

func (s *PostgresStore) ClearRevoked(ctx context.Context, name string, addr domain.Address) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM revoked_certifier_addresses WHERE name = $1 AND address = $2`, name, string(addr))
	if err != nil {
		return fmt.Errorf("clear revoked: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRevoked(ctx context.Context, name string) ([]domain.Address, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT address FROM revoked_certifier_addresses WHERE name = $1 ORDER BY address`, name)
	if err != nil {
		return nil, fmt.Errorf("list revoked: %w", err)
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("scan revoked address: %w", err)
		}
		out = append(out, domain.Address(addr))
	}
	return out, rows.Err()
}

// AppendCertification inserts the entry and returns its position in the
// project's log. The count is read under the same transaction, which the
// advisory lock serializes.
func (s *PostgresStore) AppendCertification(ctx context.Context, c *models.Certification) (uint64, error) {
	index, err := s.CountCertifications(ctx, c.ProjectID)
	if err != nil {
		return 0, err
	}
	_, err = tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO certifications (project_id, certifier_name, standard, certificate_id,
			issuance_date, expiry_date, metadata_uri, certifier_address, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uint64(c.ProjectID), c.CertifierName, c.Standard, c.CertificateID,
		c.IssuanceDate, c.ExpiryDate, c.MetadataURI, string(c.CertifierAddress), c.RecordedAt)
	if err != nil {
		return 0, fmt.Errorf("insert certification: %w", err)
	}
	return index, nil
}

func (s *PostgresStore) ListCertifications(ctx context.Context, projectID domain.ProjectID) ([]*models.Certification, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT certifier_name, standard, certificate_id, issuance_date, expiry_date,
			metadata_uri, certifier_address, recorded_at
		FROM certifications WHERE project_id = $1 ORDER BY seq
	`, uint64(projectID))
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	defer rows.Close()

	out := []*models.Certification{}
	for rows.Next() {
		c := models.Certification{ProjectID: projectID}
		var addr string
		if err := rows.Scan(&c.CertifierName, &c.Standard, &c.CertificateID, &c.IssuanceDate,
			&c.ExpiryDate, &c.MetadataURI, &addr, &c.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan certification: %w", err)
		}
		c.CertifierAddress = domain.Address(addr)
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountCertifications(ctx context.Context, projectID domain.ProjectID) (uint64, error) {
	var n uint64
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM certifications WHERE project_id = $1`, uint64(projectID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count certifications: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Owner(ctx context.Context) (domain.Address, error) {
	var owner string
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `SELECT owner FROM registry_settings`).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load registry owner: %w", err)
	}
	return domain.Address(owner), nil
}

func (s *PostgresStore) SetOwner(ctx context.Context, owner domain.Address) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registry_settings (id, owner) VALUES (TRUE, $1)
		ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner
	`, string(owner))
	if err != nil {
		return fmt.Errorf("set registry owner: %w", err)
	}
	return nil
}
