package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists the ledger in PostgreSQL. Amounts and asset-ids are
// NUMERIC(20,0) so the full uint64 range round-trips.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NextProjectID bumps the project counter row. The update is part of the
// surrounding transaction, so a rolled-back creation does not consume an id.
func (s *PostgresStore) NextProjectID(ctx context.Context) (domain.ProjectID, error) {
	var next uint64
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		UPDATE ledger_counters SET value = value + 1
		WHERE name = 'project_id'
		RETURNING value - 1
	`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocate project id: %w", err)
	}
	return domain.ProjectID(next), nil
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *models.Project) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO projects (id, name, description, location, methodology, start_date, end_date,
			total_credits, issued_credits, batch_count, owner, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, uint64(p.ID), p.Name, p.Description, p.Location, p.Methodology, p.StartDate, p.EndDate,
		p.TotalCredits, p.IssuedCredits, p.BatchCount, string(p.Owner), p.Verified, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, p *models.Project) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE projects
		SET issued_credits = $2, batch_count = $3, verified = $4
		WHERE id = $1
	`, uint64(p.ID), p.IssuedCredits, p.BatchCount, p.Verified)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) FindProject(ctx context.Context, projectID domain.ProjectID) (*models.Project, error) {
	var (
		p     models.Project
		id    uint64
		owner string
	)
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, name, description, location, methodology, start_date, end_date,
			total_credits, issued_credits, batch_count, owner, verified, created_at
		FROM projects WHERE id = $1
	`, uint64(projectID)).Scan(&id, &p.Name, &p.Description, &p.Location, &p.Methodology,
		&p.StartDate, &p.EndDate, &p.TotalCredits, &p.IssuedCredits, &p.BatchCount,
		&owner, &p.Verified, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	p.ID = domain.ProjectID(id)
	p.Owner = domain.Address(owner)
	return &p, nil
}

func (s *PostgresStore) ProjectStats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM projects WHERE verified),
			(SELECT COALESCE(SUM(issued_credits), 0) FROM projects),
			(SELECT COALESCE(SUM(retired_total), 0) FROM retirement_totals)
	`).Scan(&stats.Projects, &stats.VerifiedProjects, &stats.IssuedCredits, &stats.RetiredCredits)
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) CreateBatch(ctx context.Context, b *models.CreditBatch) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO credit_batches (project_id, batch_id, asset_id, amount, vintage, serial_number, retired, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uint64(b.ProjectID), uint64(b.BatchID), uint64(b.AssetID), b.Amount, b.Vintage,
		b.SerialNumber, b.Retired, b.IssuedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateBatch(ctx context.Context, b *models.CreditBatch) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE credit_batches SET retired = $3
		WHERE project_id = $1 AND batch_id = $2
	`, uint64(b.ProjectID), uint64(b.BatchID), b.Retired)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return requireRow(res)
}

const batchColumns = `project_id, batch_id, asset_id, amount, vintage, serial_number, retired, issued_at`

func (s *PostgresStore) FindBatch(ctx context.Context, projectID domain.ProjectID, batchID domain.BatchID) (*models.CreditBatch, error) {
	row := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM credit_batches WHERE project_id = $1 AND batch_id = $2`,
		uint64(projectID), uint64(batchID))
	b, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) ListBatches(ctx context.Context, projectID domain.ProjectID) ([]*models.CreditBatch, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+batchColumns+` FROM credit_batches WHERE project_id = $1 ORDER BY batch_id`,
		uint64(projectID))
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	out := []*models.CreditBatch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddRetirement(ctx context.Context, r *models.Retirement) (uint64, error) {
	exec := tx.Exec(ctx, s.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO retirements (asset_id, project_id, batch_id, holder, amount, retired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uint64(r.AssetID), uint64(r.ProjectID), uint64(r.BatchID), string(r.Holder), r.Amount, r.RetiredAt)
	if err != nil {
		return 0, fmt.Errorf("insert retirement: %w", err)
	}
	var total uint64
	err = exec.QueryRowContext(ctx, `
		INSERT INTO retirement_totals (asset_id, retired_total)
		VALUES ($1, $2)
		ON CONFLICT (asset_id) DO UPDATE SET retired_total = retirement_totals.retired_total + EXCLUDED.retired_total
		RETURNING retired_total
	`, uint64(r.AssetID), r.Amount).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("bump retirement total: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) RetiredAmount(ctx context.Context, assetID domain.AssetID) (uint64, error) {
	var total uint64
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT retired_total FROM retirement_totals WHERE asset_id = $1`, uint64(assetID)).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read retirement total: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) ListRetirements(ctx context.Context, assetID domain.AssetID) ([]*models.Retirement, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT asset_id, project_id, batch_id, holder, amount, retired_at
		FROM retirements WHERE asset_id = $1 ORDER BY seq
	`, uint64(assetID))
	if err != nil {
		return nil, fmt.Errorf("list retirements: %w", err)
	}
	defer rows.Close()
	out := []*models.Retirement{}
	for rows.Next() {
		var (
			r                     models.Retirement
			asset, project, batch uint64
			holder                string
		)
		if err := rows.Scan(&asset, &project, &batch, &holder, &r.Amount, &r.RetiredAt); err != nil {
			return nil, fmt.Errorf("scan retirement: %w", err)
		}
		r.AssetID = domain.AssetID(asset)
		r.ProjectID = domain.ProjectID(project)
		r.BatchID = domain.BatchID(batch)
		r.Holder = domain.Address(holder)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) TotalRetired(ctx context.Context) (uint64, error) {
	var total uint64
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(retired_total), 0) FROM retirement_totals`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum retirements: %w", err)
	}
	return total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(row scanner) (*models.CreditBatch, error) {
	var (
		b                     models.CreditBatch
		project, batch, asset uint64
	)
	if err := row.Scan(&project, &batch, &asset, &b.Amount, &b.Vintage, &b.SerialNumber, &b.Retired, &b.IssuedAt); err != nil {
		return nil, err
	}
	b.ProjectID = domain.ProjectID(project)
	b.BatchID = domain.BatchID(batch)
	b.AssetID = domain.AssetID(asset)
	return &b, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
