package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certmetrics "carbonledger/internal/certification/metrics"
	ledgermodels "carbonledger/internal/ledger/models"
	"carbonledger/pkg/domain"
)

type stubLedger struct {
	projects map[domain.ProjectID]string
	calls    int
	err      error
}

func (s *stubLedger) GetProject(_ context.Context, id domain.ProjectID) (*ledgermodels.Project, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &ledgermodels.Project{ID: id, Name: s.projects[id]}, nil
}

type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failGet bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestLedgerProjectLookup(t *testing.T) {
	ledger := &stubLedger{projects: map[domain.ProjectID]string{1: "Mangrove"}}
	lookup := NewLedgerProjectLookup(ledger)

	ok, err := lookup.ProjectExists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lookup.ProjectExists(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ledger.err = errors.New("down")
	_, err = lookup.ProjectExists(context.Background(), 1)
	assert.Error(t, err)
}

func TestCachedProjectLookup(t *testing.T) {
	ctx := context.Background()
	ledger := &stubLedger{projects: map[domain.ProjectID]string{7: "Peatland"}}
	cache := newFakeRedis()
	m := certmetrics.New(prometheus.NewRegistry())
	lookup := NewCachedProjectLookup(NewLedgerProjectLookup(ledger), cache, time.Minute, m, nil)

	t.Run("miss then hit", func(t *testing.T) {
		ok, err := lookup.ProjectExists(ctx, 7)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, ledger.calls)
		assert.Equal(t, time.Minute, cache.ttls["registry:project:7"])

		ok, err = lookup.ProjectExists(ctx, 7)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, ledger.calls, "second lookup served from cache")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ProjectLookupCache.WithLabelValues("hit")))
	})

	t.Run("negative answers are not cached", func(t *testing.T) {
		before := ledger.calls
		for range 2 {
			ok, err := lookup.ProjectExists(ctx, 8)
			require.NoError(t, err)
			assert.False(t, ok)
		}
		assert.Equal(t, before+2, ledger.calls)
		_, cached := cache.values["registry:project:8"]
		assert.False(t, cached)
	})

	t.Run("redis failure falls through to ledger", func(t *testing.T) {
		cache.failGet = true
		defer func() { cache.failGet = false }()
		before := ledger.calls
		ok, err := lookup.ProjectExists(ctx, 7)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, before+1, ledger.calls)
	})
}

func TestCachedProjectLookupKeyScope(t *testing.T) {
	ctx := context.Background()
	cache := newFakeRedis()

	previous := &stubLedger{projects: map[domain.ProjectID]string{1: "Mangrove"}}
	first := NewCachedProjectLookup(NewLedgerProjectLookup(previous), cache, time.Minute, nil, nil, WithKeyScope("run-a"))
	ok, err := first.ProjectExists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, cache.values, "registry:project:run-a:1")

	// A restarted ledger reuses id 1 before creating it.
	restarted := &stubLedger{projects: map[domain.ProjectID]string{}}
	second := NewCachedProjectLookup(NewLedgerProjectLookup(restarted), cache, time.Minute, nil, nil, WithKeyScope("run-b"))
	ok, err = second.ProjectExists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok, "entries cached under another scope are not trusted")
	assert.Equal(t, 1, restarted.calls)
}
