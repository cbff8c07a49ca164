package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"carbonledger/internal/marketplace/handler/mocks"
	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/marketplace/service"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/httputil"
	"carbonledger/pkg/requestcontext"
	"carbonledger/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	market *mocks.MockService
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.market = mocks.NewMockService(s.ctrl)
	h := New(s.market, slog.New(slog.NewTextHandler(io.Discard, nil)))
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

func listing(amount uint64, active bool) *models.Listing {
	return &models.Listing{
		ID: 3, Seller: testutil.Seller, AssetID: 1_000_001, Amount: amount,
		PricePerUnit: 100_000_000, PaymentAsset: "USDC", Active: active,
	}
}

func (s *HandlerSuite) TestCreateListing() {
	s.Run("parses asset and payment kind", func() {
		s.market.EXPECT().CreateListing(gomock.Any(), &service.CreateListingCommand{
			Caller: testutil.Seller, AssetID: 1_000_001, Amount: 10, PricePerUnit: 100_000_000, PaymentAsset: "USDC",
		}).Return(listing(10, true), nil)

		rec := s.do(http.MethodPost, "/listings", map[string]any{
			"asset_id": "1000001", "amount": 10, "price_per_unit": 100_000_000, "payment_asset": "usdc",
		}, testutil.Seller)
		s.Require().Equal(http.StatusCreated, rec.Code)
		var resp ListingResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal("3", resp.ID)
		s.Equal("USDC", resp.PaymentAsset)
		s.True(resp.Active)
	})

	s.Run("zero amount is rejected before the service", func() {
		rec := s.do(http.MethodPost, "/listings", map[string]any{
			"asset_id": "1000001", "amount": 0, "price_per_unit": 1, "payment_asset": "USDC",
		}, testutil.Seller)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("balance shortfall maps to 422", func() {
		s.market.EXPECT().CreateListing(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInsufficientBalance, "seller balance too low for listing"))
		rec := s.do(http.MethodPost, "/listings", map[string]any{
			"asset_id": "1000001", "amount": 99, "price_per_unit": 1, "payment_asset": "USDC",
		}, testutil.Seller)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *HandlerSuite) TestPurchase() {
	s.Run("returns the split", func() {
		s.market.EXPECT().PurchaseCredits(gomock.Any(), &service.PurchaseCommand{
			Caller: testutil.Buyer, ListingID: 3, Amount: 10,
		}).Return(&models.Purchase{
			Listing: listing(0, false),
			Settlement: &models.Settlement{
				ListingID: 3, Buyer: testutil.Buyer, Seller: testutil.Seller, Amount: 10, PaymentAsset: "USDC",
				Quote: models.Quote{Total: 1_000_000_000, Fee: 25_000_000, SellerPayment: 975_000_000},
			},
		}, nil)

		rec := s.do(http.MethodPost, "/listings/3/purchase", map[string]any{"amount": 10}, testutil.Buyer)
		s.Require().Equal(http.StatusOK, rec.Code)
		var resp PurchaseResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal(uint64(25_000_000), resp.Fee)
		s.Equal(uint64(975_000_000), resp.SellerPayment)
		s.False(resp.Listing.Active)
	})

	s.Run("inactive listing maps to 409", func() {
		s.market.EXPECT().PurchaseCredits(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.NewReason(dErrors.CodeTerminalState, dErrors.ReasonListingNotActive, "listing is not active"))
		rec := s.do(http.MethodPost, "/listings/3/purchase", map[string]any{"amount": 1}, testutil.Buyer)
		s.Require().Equal(http.StatusConflict, rec.Code)
		var resp httputil.ErrorResponse
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Equal("listing_not_active", resp.Reason)
	})

	s.Run("bad listing id", func() {
		rec := s.do(http.MethodPost, "/listings/abc/purchase", map[string]any{"amount": 1}, testutil.Buyer)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestCancelListing() {
	s.market.EXPECT().CancelListing(gomock.Any(), testutil.Seller, domain.ListingID(3)).Return(listing(4, false), nil)
	rec := s.do(http.MethodPost, "/listings/3/cancel", nil, testutil.Seller)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.market.EXPECT().CancelListing(gomock.Any(), testutil.Stranger, domain.ListingID(3)).
		Return(nil, dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonPrincipalMismatch, "only the seller may cancel this listing"))
	rec = s.do(http.MethodPost, "/listings/3/cancel", nil, testutil.Stranger)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestFees() {
	s.market.EXPECT().SetPlatformFee(gomock.Any(), testutil.Admin, uint64(1001)).
		Return(nil, dErrors.NewReason(dErrors.CodeInvalidInput, dErrors.ReasonFeeTooHigh, "platform fee exceeds ceiling"))
	rec := s.do(http.MethodPut, "/market/fees", map[string]any{"fee_bps": 1001}, testutil.Admin)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	var errResp httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&errResp))
	s.Equal("fee_too_high", errResp.Reason)

	s.market.EXPECT().SetFeeCollector(gomock.Any(), testutil.Admin, testutil.FeeCollector).
		Return(&models.FeeConfig{FeeBps: 250, FeeCollector: testutil.FeeCollector}, nil)
	rec = s.do(http.MethodPut, "/market/fee-collector", map[string]any{"fee_collector": testutil.FeeCollector.String()}, testutil.Admin)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.market.EXPECT().GetFeeConfig(gomock.Any()).Return(&models.FeeConfig{FeeBps: 250, FeeCollector: testutil.FeeCollector}, nil)
	rec = s.do(http.MethodGet, "/market/fees", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp FeeConfigResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(uint64(250), resp.FeeBps)
	s.Equal(testutil.FeeCollector.String(), resp.FeeCollector)
}

func (s *HandlerSuite) TestReads() {
	s.market.EXPECT().ListActiveListings(gomock.Any()).Return([]*models.Listing{listing(1, true), listing(2, true)}, nil)
	rec := s.do(http.MethodGet, "/listings", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list ListingListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&list))
	s.Equal(2, list.Total)

	s.market.EXPECT().GetListing(gomock.Any(), domain.ListingID(9)).Return(&models.Listing{}, nil)
	rec = s.do(http.MethodGet, "/listings/9", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var l ListingResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&l))
	s.Equal("0", l.ID)
	s.False(l.Active)
}

func (s *HandlerSuite) TestMutationsRequirePrincipal() {
	rec := s.do(http.MethodPost, "/listings/3/purchase", map[string]any{"amount": 1}, "")
	s.Equal(http.StatusInternalServerError, rec.Code)
}
