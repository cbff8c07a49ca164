package adapters

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	certmetrics "carbonledger/internal/certification/metrics"
	ledgermodels "carbonledger/internal/ledger/models"
	"carbonledger/internal/platform/tracer"
	"carbonledger/pkg/domain"
)

const redisProjectKeyPrefix = "registry:project:"

// ProjectReader is the slice of the ledger service the registry reads.
type ProjectReader interface {
	GetProject(ctx context.Context, projectID domain.ProjectID) (*ledgermodels.Project, error)
}

// LedgerProjectLookup answers existence checks in-process against the
// Credit Ledger. A project exists when its name is non-empty.
type LedgerProjectLookup struct {
	ledger ProjectReader
}

func NewLedgerProjectLookup(ledger ProjectReader) *LedgerProjectLookup {
	return &LedgerProjectLookup{ledger: ledger}
}

func (a *LedgerProjectLookup) ProjectExists(ctx context.Context, projectID domain.ProjectID) (bool, error) {
	p, err := a.ledger.GetProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	return p != nil && p.Name != "", nil
}

// Lookup is satisfied by LedgerProjectLookup and by CachedProjectLookup.
type Lookup interface {
	ProjectExists(ctx context.Context, projectID domain.ProjectID) (bool, error)
}

// CacheClient is the subset of go-redis the cache needs.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedProjectLookup is a read-through Redis cache in front of a Lookup.
// Projects are never deleted, so only positive answers are cached; a miss
// always falls through to the ledger.
type CachedProjectLookup struct {
	next    Lookup
	client  CacheClient
	ttl     time.Duration
	scope   string
	metrics *certmetrics.Metrics
	tracer  tracer.Tracer
}

// CacheOption configures a CachedProjectLookup.
type CacheOption func(*CachedProjectLookup)

// WithKeyScope namespaces cache keys. Ledgers whose project ids do not
// survive a restart must pass a value unique to the ledger instance, or a
// shared Redis would answer for projects the new instance never created.
func WithKeyScope(scope string) CacheOption {
	return func(c *CachedProjectLookup) {
		c.scope = scope
	}
}

// NewCachedProjectLookup wraps next. metrics may be nil; a nil tracer
// disables spans.
func NewCachedProjectLookup(next Lookup, client CacheClient, ttl time.Duration, m *certmetrics.Metrics, t tracer.Tracer, opts ...CacheOption) *CachedProjectLookup {
	if t == nil {
		t = tracer.NewNoop()
	}
	c := &CachedProjectLookup{next: next, client: client, ttl: ttl, metrics: m, tracer: t}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectExists consults Redis first. Redis failures degrade to the ledger
// rather than failing the certification.
func (c *CachedProjectLookup) ProjectExists(ctx context.Context, projectID domain.ProjectID) (exists bool, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanProjectLookup, tracer.Uint64(tracer.AttrProjectID, uint64(projectID)))
	defer func() { span.End(err) }()

	key := c.projectKey(projectID)
	_, getErr := c.client.Get(ctx, key).Result()
	hit := getErr == nil
	span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, hit))
	if c.metrics != nil {
		c.metrics.ObserveCacheLookup(hit)
	}
	if hit {
		return true, nil
	}
	if !errors.Is(getErr, redis.Nil) {
		span.AddEvent("cache_error", tracer.String("error", getErr.Error()))
	}

	exists, err = c.next.ProjectExists(ctx, projectID)
	if err != nil || !exists {
		return exists, err
	}
	if setErr := c.client.Set(ctx, key, "1", c.ttl).Err(); setErr != nil {
		span.AddEvent("cache_write_failed", tracer.String("error", fmt.Sprintf("save project cache: %v", setErr)))
	}
	return true, nil
}

func (c *CachedProjectLookup) projectKey(projectID domain.ProjectID) string {
	id := strconv.FormatUint(uint64(projectID), 10)
	if c.scope == "" {
		return redisProjectKeyPrefix + id
	}
	return redisProjectKeyPrefix + c.scope + ":" + id
}
