package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonledger/pkg/requestcontext"
	"carbonledger/pkg/testutil"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestInMemoryStoreRecentIsNewestFirstAndBounded(t *testing.T) {
	store := NewInMemoryStore(3)
	ctx := context.Background()
	for _, name := range []EventName{EventProjectCreated, EventProjectVerified, EventCreditsIssued, EventCreditsRetired} {
		require.NoError(t, store.Append(ctx, Event{Name: name}))
	}

	events, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventCreditsRetired, events[0].Name)
	assert.Equal(t, EventProjectVerified, events[2].Name)
	assert.Equal(t, 3, store.Len())

	events, err = store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventCreditsRetired, events[0].Name)
}

func TestPublisherFillsEnvelope(t *testing.T) {
	store := NewInMemoryStore(10)
	p := NewPublisher(store)
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")

	require.NoError(t, p.Emit(ctx, Event{Name: EventListingCreated, Actor: testutil.Seller}))

	events, err := p.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "req-1", events[0].RequestID)
}

func TestPublisherForwardsSynchronously(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	var buf bytes.Buffer
	p := NewPublisher(NewInMemoryStore(10), WithSink(sink),
		WithPublisherLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	err := p.Emit(context.Background(), Event{Name: EventFeeUpdated})

	require.NoError(t, err, "sink failures do not fail the ledger call")
	assert.Equal(t, 1, sink.count())
	assert.Contains(t, buf.String(), "failed to forward ledger event")
}

func TestPublisherAsyncDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	store := NewInMemoryStore(100)
	p := NewPublisher(store, WithSink(sink), WithAsyncBuffer(100))

	for range 20 {
		require.NoError(t, p.Emit(context.Background(), Event{Name: EventCreditsPurchased}))
	}
	p.Close()

	assert.Equal(t, 20, sink.count())
	assert.Equal(t, 20, store.Len())
}

func TestEmitterLogsAndPublishes(t *testing.T) {
	var buf bytes.Buffer
	store := NewInMemoryStore(10)
	e := NewEmitter(slog.New(slog.NewJSONHandler(&buf, nil)), NewPublisher(store))

	e.Emit(context.Background(), EventCreditsIssued, testutil.Issuer,
		"project_id", uint64(1), "batch_id", uint64(0), "amount", uint64(500))

	events, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, testutil.Issuer, events[0].Actor)
	assert.Equal(t, map[string]string{"project_id": "1", "batch_id": "0", "amount": "500"}, events[0].Fields)
	assert.Contains(t, buf.String(), `"log_type":"audit"`)
	assert.Contains(t, buf.String(), `"event":"credits_issued"`)
}

func TestNilEmitterIsSafe(t *testing.T) {
	var e *Emitter
	assert.NotPanics(t, func() {
		e.Emit(context.Background(), EventRoleGranted, testutil.Admin)
	})
	assert.NotPanics(t, func() {
		NewEmitter(nil, nil).Emit(context.Background(), EventRoleGranted, testutil.Admin)
	})
}

func TestHandlerListEvents(t *testing.T) {
	store := NewInMemoryStore(10)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Name: EventProjectCreated}))
	require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Name: EventProjectVerified}))

	r := chi.NewRouter()
	NewHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

	t.Run("returns newest first", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?limit=1", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ListEventsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "project_verified", resp.Events[0].Event)
	})

	t.Run("rejects bad limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?limit=-2", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
