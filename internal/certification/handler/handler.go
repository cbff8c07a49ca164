package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carbonledger/internal/certification/models"
	"carbonledger/internal/certification/service"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
)

// Service defines the Certification Registry operations exposed over HTTP.
type Service interface {
	AuthorizeCertifier(ctx context.Context, caller domain.Address, name string, addr domain.Address) (*models.Certifier, error)
	RevokeCertifier(ctx context.Context, caller domain.Address, name string) (*models.Certifier, error)
	AddCertification(ctx context.Context, cmd *service.AddCertificationCommand) (*models.Certification, uint64, error)
	TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error
	GetCertifier(ctx context.Context, name string) (*models.CertifierView, error)
	ListCertifications(ctx context.Context, projectID domain.ProjectID) ([]*models.Certification, error)
	Owner(ctx context.Context) (domain.Address, error)
}

// Handler handles Certification Registry endpoints.
type Handler struct {
	registry Service
	logger   *slog.Logger
}

func New(registry Service, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register mounts the mutating routes. Callers wrap r with auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/certifiers", h.HandleAuthorizeCertifier)
	r.Delete("/certifiers/{name}", h.HandleRevokeCertifier)
	r.Post("/projects/{id}/certifications", h.HandleAddCertification)
	r.Put("/registry/owner", h.HandleTransferOwnership)
}

// RegisterPublic mounts the read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/certifiers/{name}", h.HandleGetCertifier)
	r.Get("/projects/{id}/certifications", h.HandleListCertifications)
	r.Get("/registry/owner", h.HandleGetOwner)
}

func (h *Handler) HandleAuthorizeCertifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AuthorizeCertifierRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.registry.AuthorizeCertifier(ctx, caller, req.Name, req.address)
	if err != nil {
		h.logger.ErrorContext(ctx, "authorize certifier failed", "error", err, "certifier", req.Name, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCertifierResponse(c, nil))
}

func (h *Handler) HandleRevokeCertifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	name := chi.URLParam(r, "name")

	c, err := h.registry.RevokeCertifier(ctx, caller, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "revoke certifier failed", "error", err, "certifier", name, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCertifierResponse(c, nil))
}

func (h *Handler) HandleAddCertification(w http.ResponseWriter, r *http.Request) {
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
	req, ok := httputil.DecodeAndPrepare[AddCertificationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cert, index, err := h.registry.AddCertification(ctx, &service.AddCertificationCommand{
		Caller:        caller,
		ProjectID:     projectID,
		CertifierName: req.CertifierName,
		Standard:      req.Standard,
		CertificateID: req.CertificateID,
		IssuanceDate:  req.IssuanceDate,
		ExpiryDate:    req.ExpiryDate,
		MetadataURI:   req.MetadataURI,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "add certification failed", "error", err,
			"project_id", projectID, "certifier", req.CertifierName, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toCertificationResponse(index, cert))
}

func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferOwnershipRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.registry.TransferOwnership(ctx, caller, req.newOwner); err != nil {
		h.logger.ErrorContext(ctx, "transfer ownership failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Owner: req.newOwner.String()})
}

func (h *Handler) HandleGetCertifier(w http.ResponseWriter, r *http.Request) {
	view, err := h.registry.GetCertifier(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	revoked := make([]string, 0, len(view.Revoked))
	for _, addr := range view.Revoked {
		revoked = append(revoked, addr.String())
	}
	httputil.WriteJSON(w, http.StatusOK, toCertifierResponse(&view.Certifier, revoked))
}

func (h *Handler) HandleListCertifications(w http.ResponseWriter, r *http.Request) {
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	certs, err := h.registry.ListCertifications(r.Context(), projectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]CertificationResponse, 0, len(certs))
	for i, c := range certs {
		out = append(out, toCertificationResponse(uint64(i), c))
	}
	httputil.WriteJSON(w, http.StatusOK, CertificationListResponse{Certifications: out, Total: len(out)})
}

func (h *Handler) HandleGetOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.registry.Owner(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Owner: owner.String()})
}
