package audit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
)

const defaultPageSize = 100

// Reader lists recorded events.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Event, error)
}

type Handler struct {
	reader Reader
	logger *slog.Logger
}

func NewHandler(reader Reader, logger *slog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/events", h.HandleListEvents)
}

type EventResponse struct {
	ID        string            `json:"id"`
	Event     string            `json:"event"`
	Timestamp time.Time         `json:"timestamp"`
	Actor     string            `json:"actor,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

// HandleListEvents returns the most recent ledger events, newest first.
// ?limit= bounds the page (default 100).
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := h.reader.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list events"))
		return
	}

	resp := ListEventsResponse{Events: make([]EventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			ID:        e.ID.String(),
			Event:     string(e.Name),
			Timestamp: e.Timestamp,
			Actor:     e.Actor.String(),
			RequestID: e.RequestID,
			Fields:    e.Fields,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
