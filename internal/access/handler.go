package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
)

// RoleService is the subset of Service the HTTP layer needs.
type RoleService interface {
	Grant(ctx context.Context, actor domain.Address, role domain.Role, principal domain.Address) error
	Revoke(ctx context.Context, actor domain.Address, role domain.Role, principal domain.Address) error
	ListRoles(ctx context.Context, principal domain.Address) ([]domain.Role, error)
}

type Handler struct {
	service RoleService
	logger  *slog.Logger
}

func NewHandler(service RoleService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the mutating routes; callers wrap r with auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/roles/{role}/{address}", h.HandleGrant)
	r.Delete("/roles/{role}/{address}", h.HandleRevoke)
}

// RegisterPublic mounts read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/roles/{address}", h.HandleListRoles)
}

type RolesResponse struct {
	Address string   `json:"address"`
	Roles   []string `json:"roles"`
}

func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "grant role", h.service.Grant)
}

func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "revoke role", h.service.Revoke)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, action string,
	op func(context.Context, domain.Address, domain.Role, domain.Address) error) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actor, err := httputil.RequirePrincipal(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	role, err := domain.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	principal, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := op(ctx, actor, role, principal); err != nil {
		h.logger.ErrorContext(ctx, action+" failed", "error", err, "request_id", requestID, "role", role)
		httputil.WriteError(w, err)
		return
	}
	h.writeRoles(w, r, principal)
}

func (h *Handler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	principal, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeRoles(w, r, principal)
}

func (h *Handler) writeRoles(w http.ResponseWriter, r *http.Request, principal domain.Address) {
	ctx := r.Context()
	roles, err := h.service.ListRoles(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "list roles failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	resp := RolesResponse{Address: principal.String(), Roles: make([]string, 0, len(roles))}
	for _, role := range roles {
		resp.Roles = append(resp.Roles, role.String())
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
