package assets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
)

// Policy is the capability check used to gate deposits.
type Policy interface {
	Require(ctx context.Context, principal domain.Address, role domain.Role) error
}

// StoreTx serializes adapter writes with ledger transactions.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Handler exposes the standalone Asset Ledger and Payment Rail.
type Handler struct {
	ledger *Ledger
	tx     StoreTx
	policy Policy
	logger *slog.Logger
}

func NewHandler(ledger *Ledger, t StoreTx, policy Policy, logger *slog.Logger) *Handler {
	return &Handler{ledger: ledger, tx: t, policy: policy, logger: logger}
}

// Register mounts the mutating routes; callers wrap r with auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/approvals", h.HandleSetApproval)
	r.Post("/allowances", h.HandleApprove)
	r.Post("/deposits", h.HandleDeposit)
	r.Post("/transfers", h.HandleTransfer)
}

// RegisterPublic mounts balance queries.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/balances/{owner}/assets/{assetId}", h.HandleCreditBalance)
	r.Get("/balances/{owner}/payments/{kind}", h.HandlePaymentBalance)
}

type SetApprovalRequest struct {
	Operator string `json:"operator" validate:"required"`
	Approved bool   `json:"approved"`

	operator domain.Address
}

func (r *SetApprovalRequest) Validate() (err error) {
	r.operator, err = domain.ParseAddress(r.Operator)
	return err
}

type ApproveRequest struct {
	Spender      string `json:"spender" validate:"required"`
	PaymentAsset string `json:"payment_asset" validate:"required"`
	Amount       uint64 `json:"amount"`

	spender domain.Address
	kind    domain.PaymentAsset
}

func (r *ApproveRequest) Validate() (err error) {
	if r.spender, err = domain.ParseAddress(r.Spender); err != nil {
		return err
	}
	r.kind, err = domain.ParsePaymentAsset(r.PaymentAsset)
	return err
}

type DepositRequest struct {
	Owner        string `json:"owner" validate:"required"`
	PaymentAsset string `json:"payment_asset" validate:"required"`
	Amount       uint64 `json:"amount" validate:"gt=0"`

	owner domain.Address
	kind  domain.PaymentAsset
}

func (r *DepositRequest) Validate() (err error) {
	if r.owner, err = domain.ParseAddress(r.Owner); err != nil {
		return err
	}
	r.kind, err = domain.ParsePaymentAsset(r.PaymentAsset)
	return err
}

type TransferRequest struct {
	To      string `json:"to" validate:"required"`
	AssetID uint64 `json:"asset_id"`
	Amount  uint64 `json:"amount" validate:"gt=0"`
	Memo    string `json:"memo" validate:"max=256"`

	to domain.Address
}

func (r *TransferRequest) Validate() (err error) {
	r.to, err = domain.ParseAddress(r.To)
	return err
}

type BalanceResponse struct {
	Owner        string `json:"owner"`
	AssetID      string `json:"asset_id,omitempty"`
	PaymentAsset string `json:"payment_asset,omitempty"`
	Balance      uint64 `json:"balance"`
}

func (h *Handler) HandleSetApproval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetApprovalRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	err = h.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return h.ledger.SetApprovalForAll(txCtx, caller, req.operator, req.Approved)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "set approval failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ApproveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	err = h.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return h.ledger.Approve(txCtx, caller, req.spender, req.kind, req.Amount)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "approve failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeposit credits payment units. Admin only.
func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DepositRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	err = h.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := h.policy.Require(txCtx, caller, domain.RoleAdmin); err != nil {
			return err
		}
		return h.ledger.Deposit(txCtx, req.owner, req.kind, req.Amount)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "deposit failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	h.writePaymentBalance(w, r, req.owner, req.kind)
}

// HandleTransfer moves the caller's own credit units.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	asset := domain.AssetID(req.AssetID)
	err = h.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return h.ledger.Move(txCtx, caller, caller, req.to, asset, req.Amount, req.Memo)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "transfer failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	h.writeCreditBalance(w, r, caller, asset)
}

func (h *Handler) HandleCreditBalance(w http.ResponseWriter, r *http.Request) {
	owner, err := domain.ParseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	asset, err := domain.ParseAssetID(chi.URLParam(r, "assetId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeCreditBalance(w, r, owner, asset)
}

func (h *Handler) HandlePaymentBalance(w http.ResponseWriter, r *http.Request) {
	owner, err := domain.ParseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	kind, err := domain.ParsePaymentAsset(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writePaymentBalance(w, r, owner, kind)
}

func (h *Handler) writeCreditBalance(w http.ResponseWriter, r *http.Request, owner domain.Address, asset domain.AssetID) {
	balance, err := h.ledger.BalanceOf(r.Context(), owner, asset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Owner: owner.String(), AssetID: asset.String(), Balance: balance})
}

func (h *Handler) writePaymentBalance(w http.ResponseWriter, r *http.Request, owner domain.Address, kind domain.PaymentAsset) {
	balance, err := h.ledger.PaymentBalanceOf(r.Context(), owner, kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Owner: owner.String(), PaymentAsset: kind.String(), Balance: balance})
}
