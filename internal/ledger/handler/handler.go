package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/ledger/service"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
)

// Service defines the Credit Ledger operations exposed over HTTP.
type Service interface {
	CreateProject(ctx context.Context, cmd *service.CreateProjectCommand) (*models.Project, error)
	VerifyProject(ctx context.Context, caller domain.Address, projectID domain.ProjectID) (*models.Project, error)
	IssueCredits(ctx context.Context, cmd *service.IssueCreditsCommand) (*models.CreditBatch, error)
	RetireCredits(ctx context.Context, cmd *service.RetireCreditsCommand) (*models.RetirementResult, error)
	GetProject(ctx context.Context, projectID domain.ProjectID) (*models.Project, error)
	GetBatch(ctx context.Context, projectID domain.ProjectID, batchID domain.BatchID) (*models.CreditBatch, error)
	ListBatches(ctx context.Context, projectID domain.ProjectID) ([]*models.CreditBatch, error)
	RetiredAmount(ctx context.Context, assetID domain.AssetID) (uint64, error)
	AssetMetadata(assetID domain.AssetID) *models.AssetMetadata
}

// Handler handles Credit Ledger endpoints.
type Handler struct {
	ledger Service
	logger *slog.Logger
}

func New(ledger Service, logger *slog.Logger) *Handler {
	return &Handler{ledger: ledger, logger: logger}
}

// Register mounts the mutating routes. Callers wrap r with auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/projects", h.HandleCreateProject)
	r.Post("/projects/{id}/verify", h.HandleVerifyProject)
	r.Post("/projects/{id}/batches", h.HandleIssueCredits)
	r.Post("/projects/{id}/batches/{batch}/retire", h.HandleRetireCredits)
}

// RegisterPublic mounts the read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/projects/{id}", h.HandleGetProject)
	r.Get("/projects/{id}/batches", h.HandleListBatches)
	r.Get("/projects/{id}/batches/{batch}", h.HandleGetBatch)
	r.Get("/assets/{assetId}/metadata", h.HandleAssetMetadata)
	r.Get("/assets/{assetId}/retired", h.HandleRetiredAmount)
}

func (h *Handler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateProjectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	project, err := h.ledger.CreateProject(ctx, &service.CreateProjectCommand{
		Caller: caller,
		Metadata: models.ProjectMetadata{
			Name:        req.Name,
			Description: req.Description,
			Location:    req.Location,
			Methodology: req.Methodology,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
		},
		TotalCredits: req.TotalCredits,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create project failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (h *Handler) HandleVerifyProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	project, err := h.ledger.VerifyProject(ctx, caller, projectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "verify project failed", "error", err, "project_id", projectID, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) HandleIssueCredits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[IssueCreditsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	batch, err := h.ledger.IssueCredits(ctx, &service.IssueCreditsCommand{
		Caller:       caller,
		ProjectID:    projectID,
		Amount:       req.Amount,
		Vintage:      req.Vintage,
		SerialNumber: req.SerialNumber,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "issue credits failed", "error", err, "project_id", projectID, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toBatchResponse(batch))
}

func (h *Handler) HandleRetireCredits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	projectID, batchID, ok := h.batchParams(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RetireCreditsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.ledger.RetireCredits(ctx, &service.RetireCreditsCommand{
		Caller:    caller,
		ProjectID: projectID,
		BatchID:   batchID,
		Amount:    req.Amount,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "retire credits failed", "error", err,
			"project_id", projectID, "batch_id", batchID, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RetirementResponse{
		Batch:        toBatchResponse(res.Batch),
		Holder:       res.Retirement.Holder.String(),
		Amount:       res.Retirement.Amount,
		RetiredTotal: res.RetiredTotal,
		RetiredAt:    res.Retirement.RetiredAt,
	})
}

func (h *Handler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	project, err := h.ledger.GetProject(r.Context(), projectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !project.Exists() {
		httputil.WriteError(w, dErrors.NewReason(dErrors.CodeNotFound, dErrors.ReasonProjectNotFound,
			"project not found", "project_id", projectID))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) HandleListBatches(w http.ResponseWriter, r *http.Request) {
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	batches, err := h.ledger.ListBatches(r.Context(), projectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	httputil.WriteJSON(w, http.StatusOK, BatchListResponse{Batches: out, Total: len(out)})
}

func (h *Handler) HandleGetBatch(w http.ResponseWriter, r *http.Request) {
	projectID, batchID, ok := h.batchParams(w, r)
	if !ok {
		return
	}
	batch, err := h.ledger.GetBatch(r.Context(), projectID, batchID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !batch.Exists() {
		httputil.WriteError(w, dErrors.NewReason(dErrors.CodeNotFound, "", "credit batch not found",
			"project_id", projectID, "batch_id", batchID))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBatchResponse(batch))
}

// HandleAssetMetadata decomposes an asset-id. It never touches state.
func (h *Handler) HandleAssetMetadata(w http.ResponseWriter, r *http.Request) {
	assetID, err := domain.ParseAssetID(chi.URLParam(r, "assetId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	meta := h.ledger.AssetMetadata(assetID)
	httputil.WriteJSON(w, http.StatusOK, AssetMetadataResponse{
		AssetID:   meta.AssetID.String(),
		ProjectID: meta.ProjectID.String(),
		BatchID:   meta.BatchID.String(),
		URI:       meta.URI,
	})
}

func (h *Handler) HandleRetiredAmount(w http.ResponseWriter, r *http.Request) {
	assetID, err := domain.ParseAssetID(chi.URLParam(r, "assetId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	total, err := h.ledger.RetiredAmount(r.Context(), assetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RetiredAmountResponse{AssetID: assetID.String(), RetiredTotal: total})
}

func (h *Handler) batchParams(w http.ResponseWriter, r *http.Request) (domain.ProjectID, domain.BatchID, bool) {
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, 0, false
	}
	batchID, err := domain.ParseBatchID(chi.URLParam(r, "batch"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, 0, false
	}
	return projectID, batchID, true
}
