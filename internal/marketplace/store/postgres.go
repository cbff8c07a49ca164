package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists listings and the market fee settings.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NextListingID shares the ledger counter table with project ids.
func (s *PostgresStore) NextListingID(ctx context.Context) (domain.ListingID, error) {
	var next uint64
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		UPDATE ledger_counters SET value = value + 1
		WHERE name = 'listing_id'
		RETURNING value - 1
	`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("allocate listing id: %w", err)
	}
	return domain.ListingID(next), nil
}

func (s *PostgresStore) CreateListing(ctx context.Context, l *models.Listing) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO listings (id, seller, asset_id, amount, price_per_unit, payment_asset, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uint64(l.ID), string(l.Seller), uint64(l.AssetID), l.Amount, l.PricePerUnit,
		string(l.PaymentAsset), l.Active, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateListing(ctx context.Context, l *models.Listing) error {
	res, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE listings SET amount = $2, active = $3 WHERE id = $1
	`, uint64(l.ID), l.Amount, l.Active)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const listingColumns = `id, seller, asset_id, amount, price_per_unit, payment_asset, active, created_at`

func (s *PostgresStore) FindListing(ctx context.Context, id domain.ListingID) (*models.Listing, error) {
	l, err := scanListing(tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, uint64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) ListActiveListings(ctx context.Context) ([]*models.Listing, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListingStats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM listings
	`).Scan(&stats.Listings, &stats.ActiveListings)
	if err != nil {
		return nil, fmt.Errorf("listing stats: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) FeeConfig(ctx context.Context) (*models.FeeConfig, error) {
	var (
		cfg       models.FeeConfig
		collector string
	)
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT fee_bps, fee_collector FROM market_settings`).Scan(&cfg.FeeBps, &collector)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load fee config: %w", err)
	}
	cfg.FeeCollector = domain.Address(collector)
	return &cfg, nil
}

func (s *PostgresStore) SaveFeeConfig(ctx context.Context, cfg *models.FeeConfig) error {
	_, err := tx.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO market_settings (id, fee_bps, fee_collector) VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE SET fee_bps = EXCLUDED.fee_bps, fee_collector = EXCLUDED.fee_collector
	`, cfg.FeeBps, string(cfg.FeeCollector))
	if err != nil {
		return fmt.Errorf("save fee config: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (*models.Listing, error) {
	var (
		l            models.Listing
		id, assetID  uint64
		seller, kind string
	)
	if err := row.Scan(&id, &seller, &assetID, &l.Amount, &l.PricePerUnit, &kind, &l.Active, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.ID = domain.ListingID(id)
	l.Seller = domain.Address(seller)
	l.AssetID = domain.AssetID(assetID)
	l.PaymentAsset = domain.PaymentAsset(kind)
	return &l, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
