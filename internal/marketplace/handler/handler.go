package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/marketplace/service"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
)

// Service defines the Marketplace operations exposed over HTTP.
type Service interface {
	CreateListing(ctx context.Context, cmd *service.CreateListingCommand) (*models.Listing, error)
	CancelListing(ctx context.Context, caller domain.Address, id domain.ListingID) (*models.Listing, error)
	PurchaseCredits(ctx context.Context, cmd *service.PurchaseCommand) (*models.Purchase, error)
	SetPlatformFee(ctx context.Context, caller domain.Address, feeBps uint64) (*models.FeeConfig, error)
	SetFeeCollector(ctx context.Context, caller, collector domain.Address) (*models.FeeConfig, error)
	GetListing(ctx context.Context, id domain.ListingID) (*models.Listing, error)
	ListActiveListings(ctx context.Context) ([]*models.Listing, error)
	GetFeeConfig(ctx context.Context) (*models.FeeConfig, error)
}

// Handler handles Marketplace endpoints.
type Handler struct {
	market Service
	logger *slog.Logger
}

func New(market Service, logger *slog.Logger) *Handler {
	return &Handler{market: market, logger: logger}
}

// Register mounts the mutating routes. Callers wrap r with auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/listings", h.HandleCreateListing)
	r.Post("/listings/{id}/cancel", h.HandleCancelListing)
	r.Post("/listings/{id}/purchase", h.HandlePurchase)
	r.Put("/market/fees", h.HandleSetFee)
	r.Put("/market/fee-collector", h.HandleSetFeeCollector)
}

// RegisterPublic mounts the read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/listings", h.HandleListListings)
	r.Get("/listings/{id}", h.HandleGetListing)
	r.Get("/market/fees", h.HandleGetFees)
}

func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateListingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	l, err := h.market.CreateListing(ctx, &service.CreateListingCommand{
		Caller:       caller,
		AssetID:      req.assetID,
		Amount:       req.Amount,
		PricePerUnit: req.PricePerUnit,
		PaymentAsset: req.paymentAsset,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create listing failed", "error", err,
			"seller", caller, "asset_id", req.assetID, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toListingResponse(l))
}

func (h *Handler) HandleCancelListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := domain.ParseListingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	l, err := h.market.CancelListing(ctx, caller, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "cancel listing failed", "error", err, "listing_id", id, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	id, err := domain.ParseListingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[PurchaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.market.PurchaseCredits(ctx, &service.PurchaseCommand{Caller: caller, ListingID: id, Amount: req.Amount})
	if err != nil {
		h.logger.ErrorContext(ctx, "purchase failed", "error", err,
			"listing_id", id, "buyer", caller, "amount", req.Amount, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPurchaseResponse(p))
}

func (h *Handler) HandleSetFee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetFeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cfg, err := h.market.SetPlatformFee(ctx, caller, req.FeeBps)
	if err != nil {
		h.logger.ErrorContext(ctx, "set platform fee failed", "error", err, "fee_bps", req.FeeBps, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFeeConfigResponse(cfg))
}

func (h *Handler) HandleSetFeeCollector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetFeeCollectorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cfg, err := h.market.SetFeeCollector(ctx, caller, req.collector)
	if err != nil {
		h.logger.ErrorContext(ctx, "set fee collector failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFeeConfigResponse(cfg))
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseListingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	l, err := h.market.GetListing(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *Handler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.market.ListActiveListings(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	httputil.WriteJSON(w, http.StatusOK, ListingListResponse{Listings: out, Total: len(out)})
}

func (h *Handler) HandleGetFees(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.market.GetFeeConfig(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFeeConfigResponse(cfg))
}
