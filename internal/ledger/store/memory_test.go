package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

const owner = domain.Address("0x1111111111111111111111111111111111111111")

func newProject(t *testing.T, s *InMemoryStore, ctx context.Context) *models.Project {
	t.Helper()
	id, err := s.NextProjectID(ctx)
	require.NoError(t, err)
	p, err := models.NewProject(id, models.ProjectMetadata{Name: "Mangrove"}, 100, owner, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.CreateProject(ctx, p))
	return p
}

func TestInMemoryStoreProjects(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := newProject(t, s, ctx)
	assert.Equal(t, domain.ProjectID(1), p.ID)
	second := newProject(t, s, ctx)
	assert.Equal(t, domain.ProjectID(2), second.ID)

	// Mutating a fetched copy does not leak into the store
	fetched, err := s.FindProject(ctx, p.ID)
	require.NoError(t, err)
	fetched.Verified = true
	again, err := s.FindProject(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, again.Verified)

	fresh, err := s.FindProject(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, fresh.Verify())
	require.NoError(t, s.UpdateProject(ctx, fresh))
	again, err = s.FindProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, again.Verified)

	_, err = s.FindProject(ctx, 99)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.ErrorIs(t, s.UpdateProject(ctx, &models.Project{ID: 99}), sentinel.ErrNotFound)
	assert.ErrorIs(t, s.CreateProject(ctx, p), sentinel.ErrAlreadyExists)

	stats, err := s.ProjectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Projects)
	assert.Equal(t, uint64(1), stats.VerifiedProjects)
}

func TestInMemoryStoreBatchesAndRetirements(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []domain.BatchID{2, 0, 1} {
		require.NoError(t, s.CreateBatch(ctx, &models.CreditBatch{ProjectID: 1, BatchID: id, AssetID: domain.AssetID(1_000_000 + uint64(id)), Amount: 10}))
	}
	require.NoError(t, s.CreateBatch(ctx, &models.CreditBatch{ProjectID: 2, BatchID: 0, AssetID: 2_000_000, Amount: 5}))
	assert.ErrorIs(t, s.CreateBatch(ctx, &models.CreditBatch{ProjectID: 1, BatchID: 0}), sentinel.ErrAlreadyExists)

	batches, err := s.ListBatches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	for i, b := range batches {
		assert.Equal(t, domain.BatchID(i), b.BatchID)
	}

	total, err := s.AddRetirement(ctx, &models.Retirement{AssetID: 1_000_000, Holder: owner, Amount: 4})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), total)
	total, err = s.AddRetirement(ctx, &models.Retirement{AssetID: 1_000_000, Holder: owner, Amount: 6})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), total)

	log, err := s.ListRetirements(ctx, 1_000_000)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, uint64(4), log[0].Amount)

	unknown, err := s.RetiredAmount(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, unknown)

	all, err := s.TotalRetired(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), all)
}

func TestInMemoryStoreRollsBackInsideTransaction(t *testing.T) {
	s := New()
	memTx := tx.NewMemory()
	ctx := context.Background()
	p := newProject(t, s, ctx)
	require.NoError(t, s.CreateBatch(ctx, &models.CreditBatch{ProjectID: p.ID, BatchID: 0, AssetID: 1_000_000, Amount: 10}))

	boom := errors.New("boom")
	err := memTx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.NextProjectID(txCtx)
		require.NoError(t, err)
		updated := *p
		updated.IssuedCredits = 50
		require.NoError(t, s.UpdateProject(txCtx, &updated))
		_, err = s.AddRetirement(txCtx, &models.Retirement{AssetID: 1_000_000, Amount: 10})
		require.NoError(t, err)
		require.NoError(t, s.UpdateBatch(txCtx, &models.CreditBatch{ProjectID: p.ID, BatchID: 0, AssetID: 1_000_000, Amount: 10, Retired: true}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	fetched, err := s.FindProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, fetched.IssuedCredits)

	b, err := s.FindBatch(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.False(t, b.Retired)

	retired, err := s.RetiredAmount(ctx, 1_000_000)
	require.NoError(t, err)
	assert.Zero(t, retired)
	log, err := s.ListRetirements(ctx, 1_000_000)
	require.NoError(t, err)
	assert.Empty(t, log)

	next, err := s.NextProjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID(2), next, "rolled-back id allocation is not consumed")
}
