// Package tracer provides a lightweight tracing abstraction over OpenTelemetry.
//
// Services depend on the Tracer interface only. Calls that leave the ledger
// (Asset Ledger mints, burns and moves, Payment Rail settlement) are wrapped in
// spans so slow or failing collaborator calls can be told apart from local work.
//
// Implementations:
//   - NoopTracer: for tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

func Int64(key string, value int64) Attribute { return Attribute{Key: key, Value: value} }

// Uint64 is recorded as a decimal string; OpenTelemetry has no unsigned type.
func Uint64(key string, value uint64) Attribute { return Attribute{Key: key, Value: value} }

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanAssetMint     = "assets.mint"
	SpanAssetBurn     = "assets.burn"
	SpanAssetBalance  = "assets.balance"
	SpanAssetMove     = "assets.move"
	SpanMarketSettle  = "market.settle"
	SpanProjectLookup = "registry.project_lookup"
)

// Attribute keys.
const (
	AttrAssetID   = "asset.id"
	AttrAmount    = "amount"
	AttrHolder    = "holder"
	AttrListingID = "listing.id"
	AttrProjectID = "project.id"
	AttrLegs      = "settlement.legs"
	AttrCacheHit  = "cache.hit"
)
