//go:build integration

package store_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/ledger/store"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	tx       *tx.PostgresTx
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.tx = tx.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateLedger(context.Background()))
}

func (s *PostgresStoreSuite) createProject(ctx context.Context, total uint64) *models.Project {
	var project *models.Project
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.store.NextProjectID(txCtx)
		if err != nil {
			return err
		}
		p, err := models.NewProject(id, models.ProjectMetadata{
			Name:      "Peatland restoration",
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		}, total, "0x1111111111111111111111111111111111111111", time.Now().UTC())
		if err != nil {
			return err
		}
		project = p
		return s.store.CreateProject(txCtx, p)
	})
	s.Require().NoError(err)
	return project
}

func (s *PostgresStoreSuite) TestProjectRoundTrip() {
	ctx := context.Background()
	p := s.createProject(ctx, math.MaxUint64)
	s.Equal(domain.ProjectID(1), p.ID)

	fetched, err := s.store.FindProject(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(uint64(math.MaxUint64), fetched.TotalCredits)
	s.Equal(p.Owner, fetched.Owner)

	s.Require().NoError(fetched.Verify())
	s.Require().NoError(s.store.UpdateProject(ctx, fetched))
	fetched, err = s.store.FindProject(ctx, p.ID)
	s.Require().NoError(err)
	s.True(fetched.Verified)

	_, err = s.store.FindProject(ctx, 42)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRolledBackCreationDoesNotConsumeID() {
	ctx := context.Background()
	boom := errors.New("boom")
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.NextProjectID(txCtx); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	p := s.createProject(ctx, 10)
	s.Equal(domain.ProjectID(1), p.ID)
}

func (s *PostgresStoreSuite) TestBatchesAndRetirementTotals() {
	ctx := context.Background()
	p := s.createProject(ctx, 100)
	for i := range 2 {
		s.Require().NoError(s.store.CreateBatch(ctx, &models.CreditBatch{
			ProjectID: p.ID, BatchID: domain.BatchID(i), AssetID: domain.AssetID(1_000_000 + i),
			Amount: 10, Vintage: 2024, SerialNumber: "SN", IssuedAt: time.Now().UTC(),
		}))
	}
	batches, err := s.store.ListBatches(ctx, p.ID)
	s.Require().NoError(err)
	s.Len(batches, 2)

	total, err := s.store.AddRetirement(ctx, &models.Retirement{AssetID: 1_000_000, ProjectID: p.ID, Holder: p.Owner, Amount: 3, RetiredAt: time.Now().UTC()})
	s.Require().NoError(err)
	s.Equal(uint64(3), total)
	total, err = s.store.AddRetirement(ctx, &models.Retirement{AssetID: 1_000_000, ProjectID: p.ID, Holder: p.Owner, Amount: 7, RetiredAt: time.Now().UTC()})
	s.Require().NoError(err)
	s.Equal(uint64(10), total)

	b := batches[0]
	s.True(b.ApplyRetirement(total))
	s.Require().NoError(s.store.UpdateBatch(ctx, b))
	fetched, err := s.store.FindBatch(ctx, p.ID, 0)
	s.Require().NoError(err)
	s.True(fetched.Retired)

	log, err := s.store.ListRetirements(ctx, 1_000_000)
	s.Require().NoError(err)
	s.Len(log, 2)

	stats, err := s.store.ProjectStats(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), stats.Projects)
	s.Equal(uint64(10), stats.RetiredCredits)
}
