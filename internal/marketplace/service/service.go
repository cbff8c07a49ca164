// Package service implements the Marketplace: fixed-price, unescrowed
// listings of credit assets settled against whitelisted payment assets with a
// platform fee split.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"carbonledger/internal/audit"
	marketmetrics "carbonledger/internal/marketplace/metrics"
	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/platform/tracer"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	syncx "carbonledger/pkg/platform/sync"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/requestcontext"
)

// purchaseGuard names the context marker set while a purchase settles.
const purchaseGuard = "market.purchase"

var defaultPaymentAssets = []domain.PaymentAsset{"USDC", "USDT"}

type Service struct {
	listings        ListingStore
	settings        SettingsStore
	validator       Validator
	settler         Settler
	policy          Policy
	tx              StoreTx
	emitter         *audit.Emitter
	metrics         *marketmetrics.Metrics
	tracer          tracer.Tracer
	inflight        *syncx.InFlight
	sellerGate      models.SellerGate
	cancelAuthority models.CancelAuthority
	paymentAssets   []domain.PaymentAsset
}

func New(listings ListingStore, settings SettingsStore, validator Validator, settler Settler, policy Policy, opts ...Option) (*Service, error) {
	cfg := &serviceConfig{
		sellerGate:      models.SellerGateOpen,
		cancelAuthority: models.CancelSellerOnly,
		paymentAssets:   defaultPaymentAssets,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if listings == nil || settings == nil {
		return nil, fmt.Errorf("marketplace stores are required")
	}
	if validator == nil || settler == nil || policy == nil {
		return nil, fmt.Errorf("validator, settler and policy are required")
	}
	switch cfg.sellerGate {
	case models.SellerGateOpen, models.SellerGateVerifiedOnly:
	default:
		return nil, fmt.Errorf("unknown seller gate %q", cfg.sellerGate)
	}
	switch cfg.cancelAuthority {
	case models.CancelSellerOnly, models.CancelAdminOnly:
	default:
		return nil, fmt.Errorf("unknown cancel authority %q", cfg.cancelAuthority)
	}
	if len(cfg.paymentAssets) == 0 {
		return nil, fmt.Errorf("at least one payment asset is required")
	}
	t := cfg.tx
	if t == nil {
		t = tx.NewMemory()
	}
	tr := cfg.tracer
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &Service{
		listings:        listings,
		settings:        settings,
		validator:       validator,
		settler:         settler,
		policy:          policy,
		tx:              t,
		emitter:         audit.NewEmitter(cfg.logger, cfg.auditPublisher),
		metrics:         cfg.metrics,
		tracer:          tr,
		inflight:        syncx.NewInFlight(),
		sellerGate:      cfg.sellerGate,
		cancelAuthority: cfg.cancelAuthority,
		paymentAssets:   slices.Clone(cfg.paymentAssets),
	}, nil
}

// CreateListingCommand offers Amount units of AssetID at PricePerUnit.
type CreateListingCommand struct {
	Caller       domain.Address
	AssetID      domain.AssetID
	Amount       uint64
	PricePerUnit uint64
	PaymentAsset domain.PaymentAsset
}

// PurchaseCommand buys Amount units from a listing.
type PurchaseCommand struct {
	Caller    domain.Address
	ListingID domain.ListingID
	Amount    uint64
}

// InitFeeConfig stores cfg if no fee configuration exists yet.
func (s *Service) InitFeeConfig(ctx context.Context, cfg models.FeeConfig) error {
	if err := models.ValidateFeeBps(cfg.FeeBps); err != nil {
		return err
	}
	if cfg.FeeCollector.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "fee collector cannot be the zero address")
	}
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.settings.FeeConfig(txCtx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load fee config")
		}
		if err := s.settings.SaveFeeConfig(txCtx, &cfg); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save fee config")
		}
		return nil
	})
}

// CreateListing records an offer. The seller's balance is checked once here
// and is not reserved afterwards.
func (s *Service) CreateListing(ctx context.Context, cmd *CreateListingCommand) (*models.Listing, error) {
	var listing *models.Listing
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if s.sellerGate == models.SellerGateVerifiedOnly {
			if err := s.policy.Require(txCtx, cmd.Caller, domain.RoleVerifiedSeller); err != nil {
				return err
			}
		}
		l, err := models.NewListing(0, cmd.Caller, cmd.AssetID, cmd.Amount, cmd.PricePerUnit,
			cmd.PaymentAsset, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.validator.ValidateListing(txCtx, l); err != nil {
			return err
		}
		if !slices.Contains(s.paymentAssets, cmd.PaymentAsset) {
			return dErrors.NewReason(dErrors.CodeUnsupportedAsset, "", "payment asset is not accepted",
				"payment_asset", cmd.PaymentAsset)
		}
		if l.ID, err = s.listings.NextListingID(txCtx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate listing id")
		}
		if err := s.listings.CreateListing(txCtx, l); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create listing")
		}
		listing = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventListingCreated, cmd.Caller,
		"listing_id", listing.ID,
		"seller", listing.Seller,
		"asset_id", listing.AssetID,
		"amount", listing.Amount,
		"price_per_unit", listing.PricePerUnit,
		"payment_asset", listing.PaymentAsset,
	)
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	return listing, nil
}

// CancelListing deactivates a listing under the configured cancel authority.
func (s *Service) CancelListing(ctx context.Context, caller domain.Address, id domain.ListingID) (*models.Listing, error) {
	var listing *models.Listing
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.listings.FindListing(txCtx, id)
		if err != nil {
			return wrapListingErr(err, id, "failed to load listing")
		}
		if err := l.Cancel(); err != nil {
			return err
		}
		if err := s.authorizeCancel(txCtx, caller, l); err != nil {
			return err
		}
		if err := s.listings.UpdateListing(txCtx, l); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update listing")
		}
		listing = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventListingCancelled, caller,
		"listing_id", listing.ID,
		"seller", listing.Seller,
		"remaining", listing.Amount,
	)
	if s.metrics != nil {
		s.metrics.IncrementCancelled()
	}
	return listing, nil
}

func (s *Service) authorizeCancel(ctx context.Context, caller domain.Address, l *models.Listing) error {
	if s.cancelAuthority == models.CancelAdminOnly {
		return s.policy.Require(ctx, caller, domain.RoleAdmin)
	}
	if caller != l.Seller {
		return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonPrincipalMismatch,
			"only the seller may cancel this listing", "actor", caller, "expected", l.Seller)
	}
	return nil
}

// PurchaseCredits buys from a listing. Listing state is written before the
// settlement call; a settlement failure rolls the whole purchase back. A
// purchase cannot be entered again from inside its own settlement, and a
// buyer has at most one purchase in flight.
func (s *Service) PurchaseCredits(ctx context.Context, cmd *PurchaseCommand) (*models.Purchase, error) {
	if syncx.Entered(ctx, purchaseGuard) {
		return nil, reentrant(cmd.Caller)
	}
	release, ok := s.inflight.Enter(cmd.Caller.String())
	if !ok {
		return nil, reentrant(cmd.Caller)
	}
	defer release()
	ctx = syncx.MarkEntered(ctx, purchaseGuard)

	var purchase *models.Purchase
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.listings.FindListing(txCtx, cmd.ListingID)
		if err != nil {
			return wrapListingErr(err, cmd.ListingID, "failed to load listing")
		}
		if err := l.Take(cmd.Amount); err != nil {
			return err
		}
		fees, err := s.feeConfig(txCtx)
		if err != nil {
			return err
		}
		quote, err := models.QuotePurchase(cmd.Amount, l.PricePerUnit, fees.FeeBps)
		if err != nil {
			return err
		}
		if err := s.listings.UpdateListing(txCtx, l); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update listing")
		}
		st := &models.Settlement{
			ListingID:    l.ID,
			Buyer:        cmd.Caller,
			Seller:       l.Seller,
			FeeCollector: fees.FeeCollector,
			AssetID:      l.AssetID,
			Amount:       cmd.Amount,
			PaymentAsset: l.PaymentAsset,
			Quote:        quote,
		}
		if err := s.settle(txCtx, st); err != nil {
			return err
		}
		purchase = &models.Purchase{Listing: l, Settlement: st}
		return nil
	})
	if err != nil {
		return nil, err
	}

	st := purchase.Settlement
	s.emitter.Emit(ctx, audit.EventCreditsPurchased, cmd.Caller,
		"listing_id", st.ListingID,
		"buyer", st.Buyer,
		"seller", st.Seller,
		"asset_id", st.AssetID,
		"amount", st.Amount,
		"price_per_unit", purchase.Listing.PricePerUnit,
		"payment_asset", st.PaymentAsset,
		"total_price", st.Total,
		"fee", st.Fee,
		"seller_payment", st.SellerPayment,
		"fee_collector", st.FeeCollector,
		"remaining", purchase.Listing.Amount,
		"active", purchase.Listing.Active,
	)
	if s.metrics != nil {
		s.metrics.RecordPurchase(st.Amount, st.Fee, st.PaymentAsset.String())
	}
	return purchase, nil
}

func reentrant(caller domain.Address) error {
	return dErrors.NewReason(dErrors.CodeConflict, dErrors.ReasonReentrantCall,
		"purchase already in progress", "actor", caller)
}

func (s *Service) settle(ctx context.Context, st *models.Settlement) (err error) {
	legs := 2
	if st.Fee > 0 {
		legs = 3
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanMarketSettle,
		tracer.Uint64(tracer.AttrListingID, uint64(st.ListingID)),
		tracer.Uint64(tracer.AttrAssetID, uint64(st.AssetID)),
		tracer.Uint64(tracer.AttrAmount, st.Amount),
		tracer.Int64(tracer.AttrLegs, int64(legs)),
	)
	defer func() { span.End(err) }()

	start := time.Now()
	err = s.settler.Settle(ctx, st)
	if s.metrics != nil {
		s.metrics.ObserveSettle(start)
	}
	if err != nil {
		var de *dErrors.Error
		if s.metrics != nil && errors.As(err, &de) {
			s.metrics.IncrementSettleFailure(string(de.Code))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "purchase settlement failed")
	}
	return nil
}

// SetPlatformFee updates the fee in basis points. Admin only; at most 1000.
func (s *Service) SetPlatformFee(ctx context.Context, caller domain.Address, feeBps uint64) (*models.FeeConfig, error) {
	if err := models.ValidateFeeBps(feeBps); err != nil {
		return nil, err
	}
	var previous uint64
	cfg, err := s.updateFees(ctx, caller, func(c *models.FeeConfig) {
		previous = c.FeeBps
		c.FeeBps = feeBps
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, audit.EventFeeUpdated, caller, "previous_fee_bps", previous, "fee_bps", feeBps)
	return cfg, nil
}

// SetFeeCollector changes where fees are paid. Admin only.
func (s *Service) SetFeeCollector(ctx context.Context, caller, collector domain.Address) (*models.FeeConfig, error) {
	if collector.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "fee collector cannot be the zero address")
	}
	var previous domain.Address
	cfg, err := s.updateFees(ctx, caller, func(c *models.FeeConfig) {
		previous = c.FeeCollector
		c.FeeCollector = collector
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, audit.EventFeeCollectorUpdated, caller,
		"previous_fee_collector", previous, "fee_collector", collector)
	return cfg, nil
}

func (s *Service) updateFees(ctx context.Context, caller domain.Address, mutate func(*models.FeeConfig)) (*models.FeeConfig, error) {
	var out *models.FeeConfig
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.policy.Require(txCtx, caller, domain.RoleAdmin); err != nil {
			return err
		}
		cfg, err := s.feeConfig(txCtx)
		if err != nil {
			return err
		}
		mutate(cfg)
		if cfg.FeeBps > 0 && cfg.FeeCollector.IsZero() {
			return dErrors.NewReason(dErrors.CodePrecondition, dErrors.ReasonFeeCollectorUnset,
				"set a fee collector before charging a platform fee")
		}
		if err := s.settings.SaveFeeConfig(txCtx, cfg); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save fee config")
		}
		out = cfg
		return nil
	})
	return out, err
}

// feeConfig returns the stored configuration or a zero fee with no collector.
func (s *Service) feeConfig(ctx context.Context) (*models.FeeConfig, error) {
	cfg, err := s.settings.FeeConfig(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return &models.FeeConfig{}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load fee config")
	}
	return cfg, nil
}
