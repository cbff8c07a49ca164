package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// Queries never fail for unassigned ids: they return the zero-value record and
// callers check its id (or Exists).
// Reads run inside a View so they never observe a half-applied transaction.

func (s *Service) GetProject(ctx context.Context, projectID domain.ProjectID) (*models.Project, error) {
	project := &models.Project{}
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		p, err := s.projects.FindProject(viewCtx, projectID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load project")
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) GetBatch(ctx context.Context, projectID domain.ProjectID, batchID domain.BatchID) (*models.CreditBatch, error) {
	batch := &models.CreditBatch{}
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		b, err := s.batches.FindBatch(viewCtx, projectID, batchID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load batch")
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *Service) ListBatches(ctx context.Context, projectID domain.ProjectID) ([]*models.CreditBatch, error) {
	var batches []*models.CreditBatch
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if batches, err = s.batches.ListBatches(viewCtx, projectID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list batches")
		}
		return nil
	})
	return batches, err
}

// RetiredAmount is the cumulative retired amount for an asset-id.
func (s *Service) RetiredAmount(ctx context.Context, assetID domain.AssetID) (uint64, error) {
	var total uint64
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if total, err = s.retirements.RetiredAmount(viewCtx, assetID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read retirement counter")
		}
		return nil
	})
	return total, err
}

func (s *Service) ListRetirements(ctx context.Context, assetID domain.AssetID) ([]*models.Retirement, error) {
	var rs []*models.Retirement
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if rs, err = s.retirements.ListRetirements(viewCtx, assetID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list retirements")
		}
		return nil
	})
	return rs, err
}

func (s *Service) ProjectCount(ctx context.Context) (uint64, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.Projects, nil
}

// AssetID derives the numeric asset-id for a (project, batch) pair.
func (s *Service) AssetID(projectID domain.ProjectID, batchID domain.BatchID) (domain.AssetID, error) {
	return s.codec.Encode(domain.AssetKey{ProjectID: projectID, BatchID: batchID})
}

// AssetMetadata decomposes assetID and renders its descriptor URI. It reads
// no state.
func (s *Service) AssetMetadata(assetID domain.AssetID) *models.AssetMetadata {
	key := s.codec.Decode(assetID)
	base := s.baseURI
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &models.AssetMetadata{
		AssetID:   assetID,
		ProjectID: key.ProjectID,
		BatchID:   key.BatchID,
		URI:       fmt.Sprintf("%sprojects/%d/batches/%d", base, key.ProjectID, key.BatchID),
	}
}

// Stats reads ledger totals in one consistent view.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	var stats *models.Stats
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		st, err := s.projects.ProjectStats(viewCtx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read project stats")
		}
		retired, err := s.retirements.TotalRetired(viewCtx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read retirement stats")
		}
		st.RetiredCredits = retired
		stats = st
		return nil
	})
	return stats, err
}

// RecordStats refreshes the ledger gauges. Run by the stats job.
func (s *Service) RecordStats(ctx context.Context) error {
	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.SetStats(stats.Projects, stats.IssuedCredits, stats.RetiredCredits)
	}
	return nil
}
