package service

import (
	"context"
	"errors"

	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// GetListing returns the zero-value listing for an unassigned id.
func (s *Service) GetListing(ctx context.Context, id domain.ListingID) (*models.Listing, error) {
	listing := &models.Listing{}
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		l, err := s.listings.FindListing(viewCtx, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load listing")
		}
		listing = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *Service) ListActiveListings(ctx context.Context) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if listings, err = s.listings.ListActiveListings(viewCtx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list listings")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// GetFeeConfig returns the current fee, zero if never configured.
func (s *Service) GetFeeConfig(ctx context.Context) (*models.FeeConfig, error) {
	var cfg *models.FeeConfig
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		cfg, err = s.feeConfig(viewCtx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	var stats *models.Stats
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if stats, err = s.listings.ListingStats(viewCtx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load listing stats")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordStats refreshes the active-listings gauge. Run by the stats job.
func (s *Service) RecordStats(ctx context.Context) error {
	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.SetActiveListings(stats.ActiveListings)
	}
	return nil
}
