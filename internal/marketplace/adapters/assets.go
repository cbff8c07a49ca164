// Package adapters connects the marketplace to the asset ledger.
package adapters

import (
	"context"

	"carbonledger/internal/assets"
	"carbonledger/internal/marketplace/models"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// BalanceReader is the read side of the asset ledger.
type BalanceReader interface {
	BalanceOf(ctx context.Context, owner domain.Address, asset domain.AssetID) (uint64, error)
}

// BalanceValidator rejects listings larger than the seller's current holding.
type BalanceValidator struct {
	balances BalanceReader
}

func NewBalanceValidator(balances BalanceReader) *BalanceValidator {
	return &BalanceValidator{balances: balances}
}

func (v *BalanceValidator) ValidateListing(ctx context.Context, l *models.Listing) error {
	held, err := v.balances.BalanceOf(ctx, l.Seller, l.AssetID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read seller balance")
	}
	if held < l.Amount {
		return dErrors.NewReason(dErrors.CodeInsufficientBalance, "", "seller balance too low for listing",
			"asset_id", l.AssetID, "requested", l.Amount, "available", held)
	}
	return nil
}

// LegSettler applies settlement legs atomically on behalf of operator.
type LegSettler interface {
	Settle(ctx context.Context, operator domain.Address, legs ...assets.Leg) error
}

// RailSettler turns a purchase into ledger legs. The marketplace acts as
// operator: buyers approve it for payment and sellers for credits.
type RailSettler struct {
	ledger   LegSettler
	operator domain.Address
}

func NewRailSettler(ledger LegSettler, operator domain.Address) *RailSettler {
	return &RailSettler{ledger: ledger, operator: operator}
}

// Settle pays the seller, then the fee collector, then delivers the credits.
func (s *RailSettler) Settle(ctx context.Context, st *models.Settlement) error {
	legs := []assets.Leg{assets.PaymentLeg(st.PaymentAsset, st.Buyer, st.Seller, st.SellerPayment)}
	if st.Fee > 0 {
		legs = append(legs, assets.PaymentLeg(st.PaymentAsset, st.Buyer, st.FeeCollector, st.Fee))
	}
	legs = append(legs, assets.CreditLeg(st.Seller, st.Buyer, st.AssetID, st.Amount))
	return s.ledger.Settle(ctx, s.operator, legs...)
}

// Operator is the address buyers and sellers must approve.
func (s *RailSettler) Operator() domain.Address {
	return s.operator
}
