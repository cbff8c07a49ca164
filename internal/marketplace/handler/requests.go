package handler

import (
	"strings"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

type CreateListingRequest struct {
	AssetID      string `json:"asset_id" validate:"required"`
	Amount       uint64 `json:"amount" validate:"gt=0"`
	PricePerUnit uint64 `json:"price_per_unit" validate:"gt=0"`
	PaymentAsset string `json:"payment_asset" validate:"required,max=16"`

	assetID      domain.AssetID
	paymentAsset domain.PaymentAsset
}

func (r *CreateListingRequest) Normalize() {
	r.AssetID = strings.TrimSpace(r.AssetID)
	r.PaymentAsset = strings.TrimSpace(r.PaymentAsset)
}

func (r *CreateListingRequest) Validate() (err error) {
	if r.assetID, err = domain.ParseAssetID(r.AssetID); err != nil {
		return err
	}
	r.paymentAsset, err = domain.ParsePaymentAsset(r.PaymentAsset)
	return err
}

type PurchaseRequest struct {
	Amount uint64 `json:"amount"`
}

func (r *PurchaseRequest) Validate() error {
	if r.Amount == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be greater than zero")
	}
	return nil
}

type SetFeeRequest struct {
	FeeBps uint64 `json:"fee_bps"`
}

type SetFeeCollectorRequest struct {
	FeeCollector string `json:"fee_collector" validate:"required"`

	collector domain.Address
}

func (r *SetFeeCollectorRequest) Validate() (err error) {
	r.collector, err = domain.ParseAddress(strings.TrimSpace(r.FeeCollector))
	return err
}
