package models

import (
	"math/bits"
	"time"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

const (
	// MaxFeeBps is the hard ceiling on the platform fee (10%).
	MaxFeeBps uint64 = 1000
	bpsDenominator   = 10_000
)

// SellerGate decides who may create listings.
type SellerGate string

const (
	SellerGateOpen         SellerGate = "open"
	SellerGateVerifiedOnly SellerGate = "verified_only"
)

// CancelAuthority decides who may cancel an active listing.
type CancelAuthority string

const (
	CancelSellerOnly CancelAuthority = "seller_only"
	CancelAdminOnly  CancelAuthority = "admin_only"
)

// Listing is a standing, unescrowed offer. Amount is what remains for sale;
// it is declared, not reserved against the seller's balance.
type Listing struct {
	ID           domain.ListingID
	Seller       domain.Address
	AssetID      domain.AssetID
	Amount       uint64
	PricePerUnit uint64
	PaymentAsset domain.PaymentAsset
	Active       bool
	CreatedAt    time.Time
}

func NewListing(id domain.ListingID, seller domain.Address, assetID domain.AssetID, amount, pricePerUnit uint64,
	payment domain.PaymentAsset, now time.Time) (*Listing, error) {
	if amount == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "listing amount must be greater than zero")
	}
	if pricePerUnit == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "price per unit must be greater than zero")
	}
	return &Listing{
		ID:           id,
		Seller:       seller,
		AssetID:      assetID,
		Amount:       amount,
		PricePerUnit: pricePerUnit,
		PaymentAsset: payment,
		Active:       true,
		CreatedAt:    now,
	}, nil
}

// Exists reports whether l is a real listing rather than a zero value.
func (l *Listing) Exists() bool {
	return l != nil && l.ID != 0
}

func (l *Listing) notActive() error {
	return dErrors.NewReason(dErrors.CodeTerminalState, dErrors.ReasonListingNotActive,
		"listing is not active", "listing_id", l.ID)
}

// Take removes amount from the listing, deactivating it once empty.
func (l *Listing) Take(amount uint64) error {
	if !l.Active {
		return l.notActive()
	}
	if amount == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "purchase amount must be greater than zero")
	}
	if amount > l.Amount {
		return dErrors.NewReason(dErrors.CodeCapacityExceeded, dErrors.ReasonExceedsAvailable,
			"purchase exceeds listed amount",
			"listing_id", l.ID, "requested", amount, "available", l.Amount)
	}
	l.Amount -= amount
	if l.Amount == 0 {
		l.Active = false
	}
	return nil
}

func (l *Listing) Cancel() error {
	if !l.Active {
		return l.notActive()
	}
	l.Active = false
	return nil
}

// FeeConfig is the platform fee and where it is paid.
type FeeConfig struct {
	FeeBps       uint64
	FeeCollector domain.Address
}

func ValidateFeeBps(bps uint64) error {
	if bps > MaxFeeBps {
		return dErrors.NewReason(dErrors.CodeInvalidInput, dErrors.ReasonFeeTooHigh,
			"platform fee exceeds ceiling", "requested", bps, "max", MaxFeeBps)
	}
	return nil
}

// Quote is the price split for one purchase. SellerPayment + Fee == Total.
type Quote struct {
	Total         uint64
	Fee           uint64
	SellerPayment uint64
}

// QuotePurchase computes total = amount*price, fee = floor(total*bps/10000)
// and gives the rounding remainder to the seller.
func QuotePurchase(amount, pricePerUnit, feeBps uint64) (Quote, error) {
	if err := ValidateFeeBps(feeBps); err != nil {
		return Quote{}, err
	}
	total, err := domain.MulAmount(amount, pricePerUnit)
	if err != nil {
		return Quote{}, err
	}
	hi, lo := bits.Mul64(total, feeBps)
	fee, _ := bits.Div64(hi, lo, bpsDenominator)
	return Quote{Total: total, Fee: fee, SellerPayment: total - fee}, nil
}

// Settlement is everything the payment and asset legs of a purchase need.
type Settlement struct {
	ListingID    domain.ListingID
	Buyer        domain.Address
	Seller       domain.Address
	FeeCollector domain.Address
	AssetID      domain.AssetID
	Amount       uint64
	PaymentAsset domain.PaymentAsset
	Quote
}

// Purchase is the outcome returned to the buyer.
type Purchase struct {
	Listing    *Listing
	Settlement *Settlement
}

// Stats summarises marketplace state for the periodic stats job.
type Stats struct {
	Listings       uint64
	ActiveListings uint64
}
