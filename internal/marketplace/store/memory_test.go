package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/testutil"
)

func listing(t *testing.T, id domain.ListingID, amount uint64) *models.Listing {
	t.Helper()
	l, err := models.NewListing(id, testutil.Seller, 1_000_000, amount, 100, "USDC", time.Now())
	require.NoError(t, err)
	return l
}

func TestInMemoryStoreListings(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.NextListingID(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingID(1), id)

	l := listing(t, id, 10)
	require.NoError(t, s.CreateListing(ctx, l))
	assert.ErrorIs(t, s.CreateListing(ctx, l), sentinel.ErrAlreadyExists)

	// Returned records are copies.
	found, err := s.FindListing(ctx, id)
	require.NoError(t, err)
	found.Amount = 1
	again, err := s.FindListing(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), again.Amount)

	second := listing(t, 2, 5)
	require.NoError(t, s.CreateListing(ctx, second))
	require.NoError(t, second.Take(5))
	require.NoError(t, s.UpdateListing(ctx, second))

	active, err := s.ListActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)

	stats, err := s.ListingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.Stats{Listings: 2, ActiveListings: 1}, stats)

	assert.ErrorIs(t, s.UpdateListing(ctx, listing(t, 9, 1)), sentinel.ErrNotFound)
	_, err = s.FindListing(ctx, 9)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStoreFeeConfig(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.FeeConfig(ctx)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.SaveFeeConfig(ctx, &models.FeeConfig{FeeBps: 250, FeeCollector: testutil.FeeCollector}))
	cfg, err := s.FeeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), cfg.FeeBps)
	assert.Equal(t, testutil.FeeCollector, cfg.FeeCollector)
}

func TestInMemoryStoreRollback(t *testing.T) {
	s := New()
	memTx := tx.NewMemory()
	ctx := context.Background()
	l := listing(t, 1, 10)
	require.NoError(t, s.CreateListing(ctx, l))

	boom := errors.New("boom")
	err := memTx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.NextListingID(txCtx); err != nil {
			return err
		}
		taken := *l
		require.NoError(t, taken.Take(10))
		if err := s.UpdateListing(txCtx, &taken); err != nil {
			return err
		}
		if err := s.SaveFeeConfig(txCtx, &models.FeeConfig{FeeBps: 100}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := s.FindListing(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found.Active)
	assert.Equal(t, uint64(10), found.Amount)
	_, err = s.FeeConfig(ctx)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	id, err := s.NextListingID(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingID(1), id)
}
