package handler

import (
	"time"

	"carbonledger/internal/marketplace/models"
)

type ListingResponse struct {
	ID           string    `json:"id"`
	Seller       string    `json:"seller"`
	AssetID      string    `json:"asset_id"`
	Amount       uint64    `json:"amount"`
	PricePerUnit uint64    `json:"price_per_unit"`
	PaymentAsset string    `json:"payment_asset"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func toListingResponse(l *models.Listing) ListingResponse {
	return ListingResponse{
		ID:           l.ID.String(),
		Seller:       l.Seller.String(),
		AssetID:      l.AssetID.String(),
		Amount:       l.Amount,
		PricePerUnit: l.PricePerUnit,
		PaymentAsset: l.PaymentAsset.String(),
		Active:       l.Active,
		CreatedAt:    l.CreatedAt,
	}
}

type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int               `json:"total"`
}

type PurchaseResponse struct {
	ListingID     string          `json:"listing_id"`
	Buyer         string          `json:"buyer"`
	Amount        uint64          `json:"amount"`
	TotalPrice    uint64          `json:"total_price"`
	Fee           uint64          `json:"fee"`
	SellerPayment uint64          `json:"seller_payment"`
	PaymentAsset  string          `json:"payment_asset"`
	Listing       ListingResponse `json:"listing"`
}

func toPurchaseResponse(p *models.Purchase) PurchaseResponse {
	st := p.Settlement
	return PurchaseResponse{
		ListingID:     st.ListingID.String(),
		Buyer:         st.Buyer.String(),
		Amount:        st.Amount,
		TotalPrice:    st.Total,
		Fee:           st.Fee,
		SellerPayment: st.SellerPayment,
		PaymentAsset:  st.PaymentAsset.String(),
		Listing:       toListingResponse(p.Listing),
	}
}

type FeeConfigResponse struct {
	FeeBps       uint64 `json:"fee_bps"`
	FeeCollector string `json:"fee_collector"`
}

func toFeeConfigResponse(cfg *models.FeeConfig) FeeConfigResponse {
	return FeeConfigResponse{FeeBps: cfg.FeeBps, FeeCollector: cfg.FeeCollector.String()}
}
