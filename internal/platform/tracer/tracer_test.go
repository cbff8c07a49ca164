package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"carbonledger/internal/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanAssetMint,
		tracer.Uint64(tracer.AttrAssetID, 1_000_000),
		tracer.Bool(tracer.AttrCacheHit, true),
	)

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.String(tracer.AttrHolder, "0xabc"))
	span.AddEvent("minted", tracer.Int64(tracer.AttrAmount, 42))
	span.End(errors.New("ignored"))
}

func TestOTelTracer_WithNoopProvider(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	ctx, span := tr.Start(context.Background(), tracer.SpanMarketSettle,
		tracer.Uint64(tracer.AttrListingID, 7),
		tracer.Duration("elapsed", 1500*time.Millisecond),
		tracer.String(tracer.AttrHolder, "0xabc"),
	)
	require.NotNil(t, ctx)
	span.SetAttributes(tracer.Int64(tracer.AttrLegs, 3))
	span.AddEvent("settled")
	span.End(nil)
}

func TestOTelTracer_DefaultsToGlobalProvider(t *testing.T) {
	tr := tracer.NewOTel()
	_, span := tr.Start(context.Background(), tracer.SpanAssetBurn)
	span.End(errors.New("burn failed"))
}
