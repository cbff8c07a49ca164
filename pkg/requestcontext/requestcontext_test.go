package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carbonledger/pkg/domain"
)

func TestRequestContextValues(t *testing.T) {
	ctx := context.Background()

	_, ok := Principal(ctx)
	assert.False(t, ok)
	assert.Empty(t, RequestID(ctx))

	addr := domain.Address("0x1111111111111111111111111111111111111111")
	ctx = WithPrincipal(WithRequestID(ctx, "req-1"), addr)

	got, ok := Principal(ctx)
	assert.True(t, ok)
	assert.Equal(t, addr, got)
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestNow(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}
