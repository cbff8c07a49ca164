package access

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"carbonledger/internal/audit"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/requestcontext"
	"carbonledger/pkg/testutil"
)

type AccessSuite struct {
	suite.Suite
	ctx    context.Context
	store  *InMemoryStore
	events *audit.InMemoryStore
	svc    *Service
}

func TestAccessSuite(t *testing.T) {
	suite.Run(t, new(AccessSuite))
}

func (s *AccessSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
	s.events = audit.NewInMemoryStore(100)
	s.svc = New(s.store, WithAuditPublisher(audit.NewPublisher(s.events)), WithTx(tx.NewMemory()))
	s.Require().NoError(s.svc.Bootstrap(s.ctx, testutil.Admin))
}

func (s *AccessSuite) TestBootstrapIsIdempotent() {
	s.Require().NoError(s.svc.Bootstrap(s.ctx, testutil.Admin))
	s.Equal(1, s.events.Len(), "second bootstrap emits nothing")

	err := s.svc.Bootstrap(s.ctx, domain.ZeroAddress)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *AccessSuite) TestRequireReportsActorAndRole() {
	err := s.svc.Require(s.ctx, testutil.Stranger, domain.RoleIssuer)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.True(dErrors.HasReason(err, dErrors.ReasonMissingCapability))
	actor, _ := dErrors.Detail(err, "actor")
	s.Equal(testutil.Stranger, actor)
	role, _ := dErrors.Detail(err, "role")
	s.Equal(domain.RoleIssuer, role)
}

func (s *AccessSuite) TestGrantAndRevoke() {
	s.Require().NoError(s.svc.Grant(s.ctx, testutil.Admin, domain.RoleIssuer, testutil.Issuer))
	s.NoError(s.svc.Require(s.ctx, testutil.Issuer, domain.RoleIssuer))

	s.Require().NoError(s.svc.Grant(s.ctx, testutil.Admin, domain.RoleIssuer, testutil.Issuer))
	s.Equal(2, s.events.Len(), "regranting a held role emits nothing")

	s.Require().NoError(s.svc.Revoke(s.ctx, testutil.Admin, domain.RoleIssuer, testutil.Issuer))
	ok, err := s.svc.HasCapability(s.ctx, testutil.Issuer, domain.RoleIssuer)
	s.Require().NoError(err)
	s.False(ok)

	events, _ := s.events.Recent(s.ctx, 1)
	s.Equal(audit.EventRoleRevoked, events[0].Name)
	s.Equal(testutil.Issuer.String(), events[0].Fields["principal"])
}

func (s *AccessSuite) TestGrantRequiresAdmin() {
	err := s.svc.Grant(s.ctx, testutil.Stranger, domain.RoleIssuer, testutil.Stranger)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = s.svc.Revoke(s.ctx, testutil.Stranger, domain.RoleAdmin, testutil.Admin)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = s.svc.Grant(s.ctx, testutil.Admin, domain.RoleIssuer, domain.ZeroAddress)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *AccessSuite) TestListRolesSorted() {
	s.Require().NoError(s.svc.Grant(s.ctx, testutil.Admin, domain.RoleVerifier, testutil.Admin))
	roles, err := s.svc.ListRoles(s.ctx, testutil.Admin)
	s.Require().NoError(err)
	s.Equal([]domain.Role{domain.RoleAdmin, domain.RoleVerifier}, roles)
}

func (s *AccessSuite) TestStoreWritesRollBackWithTransaction() {
	txm := tx.NewMemory()
	err := txm.RunInTx(s.ctx, func(ctx context.Context) error {
		_, _ = s.store.Add(ctx, testutil.Seller, domain.RoleVerifiedSeller)
		_, _ = s.store.Remove(ctx, testutil.Admin, domain.RoleAdmin)
		return dErrors.New(dErrors.CodeInternal, "abort")
	})
	s.Require().Error(err)

	ok, _ := s.store.Has(s.ctx, testutil.Seller, domain.RoleVerifiedSeller)
	s.False(ok)
	ok, _ = s.store.Has(s.ctx, testutil.Admin, domain.RoleAdmin)
	s.True(ok)
}

func (s *AccessSuite) TestHandlerGrantAndList() {
	r := chi.NewRouter()
	h := NewHandler(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Register(r)
	h.RegisterPublic(r)

	req := httptest.NewRequest(http.MethodPost, "/roles/issuer/"+testutil.Issuer.String(), nil)
	req = req.WithContext(requestcontext.WithPrincipal(req.Context(), testutil.Admin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles/"+testutil.Issuer.String(), nil))
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp RolesResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal([]string{"issuer"}, resp.Roles)

	req = httptest.NewRequest(http.MethodPost, "/roles/superuser/"+testutil.Issuer.String(), nil)
	req = req.WithContext(requestcontext.WithPrincipal(req.Context(), testutil.Admin))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/roles/issuer/"+testutil.Stranger.String(), nil)
	req = req.WithContext(requestcontext.WithPrincipal(req.Context(), testutil.Stranger))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}
