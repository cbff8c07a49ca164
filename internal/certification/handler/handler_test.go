package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"carbonledger/internal/certification/handler/mocks"
	"carbonledger/internal/certification/models"
	"carbonledger/internal/certification/service"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
	"carbonledger/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	registry *mocks.MockService
	router   chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.registry = mocks.NewMockService(s.ctrl)
	h := New(s.registry, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterPublic(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, path string, body any, caller domain.Address) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != "" {
		req = req.WithContext(requestcontext.WithPrincipal(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestAuthorizeCertifier() {
	s.Run("parses the address", func() {
		s.registry.EXPECT().AuthorizeCertifier(gomock.Any(), testutil.Admin, "VerraCert", testutil.CertifierA).
			Return(&models.Certifier{Name: "VerraCert", Authorized: true, BoundAddress: testutil.CertifierA, EverAuthorized: true}, nil)

		rec := s.do(http.MethodPost, "/certifiers", map[string]any{
			"name": " VerraCert ", "address": "0xA000000000000000000000000000000000000000",
		}, testutil.Admin)
		s.Require().Equal(http.StatusOK, rec.Code)
		var resp CertifierResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.True(resp.Authorized)
		s.Equal(testutil.CertifierA.String(), resp.BoundAddress)
	})

	s.Run("rejects malformed and zero addresses", func() {
		rec := s.do(http.MethodPost, "/certifiers", map[string]any{"name": "VerraCert", "address": "0x12"}, testutil.Admin)
		s.Equal(http.StatusBadRequest, rec.Code)
		rec = s.do(http.MethodPost, "/certifiers", map[string]any{
			"name": "VerraCert", "address": domain.ZeroAddress.String(),
		}, testutil.Admin)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("non-owner is unauthorized", func() {
		s.registry.EXPECT().AuthorizeCertifier(gomock.Any(), testutil.Stranger, "VerraCert", testutil.CertifierA).
			Return(nil, dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonPrincipalMismatch, "caller is not the registry owner"))
		rec := s.do(http.MethodPost, "/certifiers", map[string]any{
			"name": "VerraCert", "address": testutil.CertifierA.String(),
		}, testutil.Stranger)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestRevokeCertifier() {
	s.registry.EXPECT().RevokeCertifier(gomock.Any(), testutil.Admin, "VerraCert").
		Return(&models.Certifier{Name: "VerraCert", EverAuthorized: true}, nil)
	rec := s.do(http.MethodDelete, "/certifiers/VerraCert", nil, testutil.Admin)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp CertifierResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.False(resp.Authorized)
	s.True(resp.EverAuthorized)
}

func (s *HandlerSuite) TestAddCertification() {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Run("returns the log index", func() {
		s.registry.EXPECT().AddCertification(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd *service.AddCertificationCommand) (*models.Certification, uint64, error) {
				s.Equal(testutil.CertifierA, cmd.Caller)
				s.Equal(domain.ProjectID(4), cmd.ProjectID)
				s.Equal("VerraCert", cmd.CertifierName)
				return &models.Certification{
					ProjectID: 4, CertifierName: cmd.CertifierName, CertificateID: cmd.CertificateID,
					IssuanceDate: cmd.IssuanceDate, ExpiryDate: cmd.ExpiryDate, CertifierAddress: cmd.Caller,
				}, 2, nil
			})

		rec := s.do(http.MethodPost, "/projects/4/certifications", map[string]any{
			"certifier_name": "VerraCert", "certificate_id": "VCS-1", "standard": "VCS",
			"issuance_date": issued, "expiry_date": issued.AddDate(3, 0, 0),
		}, testutil.CertifierA)
		s.Require().Equal(http.StatusCreated, rec.Code)
		var resp CertificationResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal(uint64(2), resp.Index)
		s.Equal(testutil.CertifierA.String(), resp.CertifierAddress)
	})

	s.Run("revoked certifier maps to 401", func() {
		s.registry.EXPECT().AddCertification(gomock.Any(), gomock.Any()).Return(nil, uint64(0),
			dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonRevokedCertifier, "certifier address has been revoked"))
		rec := s.do(http.MethodPost, "/projects/4/certifications", map[string]any{
			"certifier_name": "VerraCert", "certificate_id": "VCS-2",
			"issuance_date": issued, "expiry_date": issued.AddDate(3, 0, 0),
		}, testutil.CertifierA)
		s.Require().Equal(http.StatusUnauthorized, rec.Code)
		var resp httputil.ErrorResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal("revoked_certifier", resp.Reason)
	})

	s.Run("missing certificate id is rejected", func() {
		rec := s.do(http.MethodPost, "/projects/4/certifications", map[string]any{
			"certifier_name": "VerraCert", "issuance_date": issued, "expiry_date": issued.AddDate(3, 0, 0),
		}, testutil.CertifierA)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestOwnership() {
	s.registry.EXPECT().TransferOwnership(gomock.Any(), testutil.Admin, testutil.Stranger).Return(nil)
	rec := s.do(http.MethodPut, "/registry/owner", map[string]any{"new_owner": testutil.Stranger.String()}, testutil.Admin)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.registry.EXPECT().Owner(gomock.Any()).Return(testutil.Stranger, nil)
	rec = s.do(http.MethodGet, "/registry/owner", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp OwnerResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(testutil.Stranger.String(), resp.Owner)
}

func (s *HandlerSuite) TestReads() {
	s.registry.EXPECT().GetCertifier(gomock.Any(), "VerraCert").Return(&models.CertifierView{
		Certifier: models.Certifier{Name: "VerraCert", EverAuthorized: true},
		Revoked:   []domain.Address{testutil.CertifierA},
	}, nil)
	rec := s.do(http.MethodGet, "/certifiers/VerraCert", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var cert CertifierResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&cert))
	s.Equal([]string{testutil.CertifierA.String()}, cert.Revoked)

	s.registry.EXPECT().ListCertifications(gomock.Any(), domain.ProjectID(4)).Return([]*models.Certification{
		{ProjectID: 4, CertificateID: "A"}, {ProjectID: 4, CertificateID: "B"},
	}, nil)
	rec = s.do(http.MethodGet, "/projects/4/certifications", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list CertificationListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&list))
	s.Equal(2, list.Total)
	s.Equal(uint64(1), list.Certifications[1].Index)
}
