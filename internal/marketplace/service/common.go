package service

import (
	"context"
	"errors"

	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// Store interfaces define persistence contracts.

type ListingStore interface {
	// NextListingID allocates the next id, starting at 1.
	NextListingID(ctx context.Context) (domain.ListingID, error)
	CreateListing(ctx context.Context, listing *models.Listing) error
	UpdateListing(ctx context.Context, listing *models.Listing) error
	FindListing(ctx context.Context, id domain.ListingID) (*models.Listing, error)
	ListActiveListings(ctx context.Context) ([]*models.Listing, error)
	ListingStats(ctx context.Context) (*models.Stats, error)
}

// SettingsStore holds the fee configuration. FeeConfig returns
// sentinel.ErrNotFound until one is saved.
type SettingsStore interface {
	FeeConfig(ctx context.Context) (*models.FeeConfig, error)
	SaveFeeConfig(ctx context.Context, cfg *models.FeeConfig) error
}

// Validator checks a new listing against the seller's holdings.
type Validator interface {
	ValidateListing(ctx context.Context, listing *models.Listing) error
}

// Settler moves the payment and credit legs of a purchase atomically.
type Settler interface {
	Settle(ctx context.Context, settlement *models.Settlement) error
}

// Policy is the capability check applied to gated operations.
type Policy interface {
	Require(ctx context.Context, principal domain.Address, role domain.Role) error
}

type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

func wrapListingErr(err error, id domain.ListingID, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.NewReason(dErrors.CodeNotFound, "", "listing not found", "listing_id", id)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
