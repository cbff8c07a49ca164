// Package assets is the in-process Asset Ledger and Payment Rail: multi-asset
// credit balances keyed by (owner, asset-id), stablecoin-equivalent payment
// balances keyed by (owner, payment kind), operator approvals and allowances.
//
// Every mutating call is all-or-nothing. Writes made inside a ledger
// transaction are journaled so the enclosing transaction can undo them.
package assets

import (
	"context"
	"sync"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
)

// ReceiveHook is invoked after credit units land on an account, once the
// ledger's own lock has been released. It models a recipient that calls back
// into the system; a non-nil error fails the whole call.
type ReceiveHook func(ctx context.Context, operator, from, to domain.Address, asset domain.AssetID, amount uint64) error

type allowanceKey struct {
	owner   domain.Address
	spender domain.Address
	kind    domain.PaymentAsset
}

// Ledger holds all balances in memory.
type Ledger struct {
	mu         sync.RWMutex
	credits    map[domain.Address]map[domain.AssetID]uint64
	supply     map[domain.AssetID]uint64
	operators  map[domain.Address]map[domain.Address]bool
	payments   map[domain.Address]map[domain.PaymentAsset]uint64
	allowances map[allowanceKey]uint64
	kinds      map[domain.PaymentAsset]struct{}
	hook       ReceiveHook
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPaymentAssets restricts the payment kinds the rail accepts.
func WithPaymentAssets(kinds ...domain.PaymentAsset) Option {
	return func(l *Ledger) {
		for _, k := range kinds {
			l.kinds[k] = struct{}{}
		}
	}
}

// WithReceiveHook installs hook for credit receipts.
func WithReceiveHook(hook ReceiveHook) Option {
	return func(l *Ledger) {
		l.hook = hook
	}
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		credits:    make(map[domain.Address]map[domain.AssetID]uint64),
		supply:     make(map[domain.AssetID]uint64),
		operators:  make(map[domain.Address]map[domain.Address]bool),
		payments:   make(map[domain.Address]map[domain.PaymentAsset]uint64),
		allowances: make(map[allowanceKey]uint64),
		kinds:      make(map[domain.PaymentAsset]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetReceiveHook replaces the receive hook. Used when the hook closes over a
// service built after the ledger.
func (l *Ledger) SetReceiveHook(hook ReceiveHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hook = hook
}

// Queries

func (l *Ledger) BalanceOf(_ context.Context, owner domain.Address, asset domain.AssetID) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.credits[owner][asset], nil
}

func (l *Ledger) TotalSupply(_ context.Context, asset domain.AssetID) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply[asset], nil
}

func (l *Ledger) IsApprovedForAll(_ context.Context, owner, operator domain.Address) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.operators[owner][operator], nil
}

func (l *Ledger) PaymentBalanceOf(_ context.Context, owner domain.Address, kind domain.PaymentAsset) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.checkKind(kind); err != nil {
		return 0, err
	}
	return l.payments[owner][kind], nil
}

func (l *Ledger) Allowance(_ context.Context, owner, spender domain.Address, kind domain.PaymentAsset) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := l.checkKind(kind); err != nil {
		return 0, err
	}
	return l.allowances[allowanceKey{owner, spender, kind}], nil
}

// Approvals

// SetApprovalForAll lets operator move any of owner's credit assets.
func (l *Ledger) SetApprovalForAll(ctx context.Context, owner, operator domain.Address, approved bool) error {
	if owner.IsZero() || operator.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "owner and operator are required")
	}
	if owner == operator {
		return dErrors.New(dErrors.CodeInvalidInput, "cannot set approval status for self")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.operators[owner][operator]
	l.setOperator(owner, operator, approved)
	tx.Record(ctx, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.setOperator(owner, operator, prev)
	})
	return nil
}

func (l *Ledger) setOperator(owner, operator domain.Address, approved bool) {
	if l.operators[owner] == nil {
		l.operators[owner] = make(map[domain.Address]bool)
	}
	l.operators[owner][operator] = approved
}

// Approve sets the amount of kind that spender may pull from owner.
func (l *Ledger) Approve(ctx context.Context, owner, spender domain.Address, kind domain.PaymentAsset, amount uint64) error {
	if owner.IsZero() || spender.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "owner and spender are required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.checkKind(kind); err != nil {
		return err
	}
	key := allowanceKey{owner, spender, kind}
	prev := l.allowances[key]
	l.allowances[key] = amount
	tx.Record(ctx, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.allowances[key] = prev
	})
	return nil
}

// Credit asset movements

// Mint creates amount units of asset on to's account.
func (l *Ledger) Mint(ctx context.Context, operator, to domain.Address, asset domain.AssetID, amount uint64) error {
	if to.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "cannot mint to the zero address")
	}
	legs := []Leg{{Kind: LegMint, To: to, Asset: asset, Amount: amount}}
	undo, err := l.apply(ctx, legs)
	if err != nil {
		return err
	}
	return l.notify(ctx, operator, legs, undo)
}

// Burn destroys amount units of asset held by from. Only the holder, or an
// operator it approved, may burn.
func (l *Ledger) Burn(ctx context.Context, operator, from domain.Address, asset domain.AssetID, amount uint64) error {
	_, err := l.apply(ctx, []Leg{{Kind: LegBurn, Operator: operator, From: from, Asset: asset, Amount: amount}})
	return err
}

// Move transfers amount of asset from one holder to another. The memo is not
// retained.
func (l *Ledger) Move(ctx context.Context, operator, from, to domain.Address, asset domain.AssetID, amount uint64, _ string) error {
	legs := []Leg{{Kind: LegCredit, Operator: operator, From: from, To: to, Asset: asset, Amount: amount}}
	undo, err := l.apply(ctx, legs)
	if err != nil {
		return err
	}
	return l.notify(ctx, operator, legs, undo)
}

// Payment rail

// TransferFrom moves amount of kind from payer to payee on behalf of spender.
func (l *Ledger) TransferFrom(ctx context.Context, spender domain.Address, kind domain.PaymentAsset, payer, payee domain.Address, amount uint64) error {
	_, err := l.apply(ctx, []Leg{{Kind: LegPayment, Operator: spender, From: payer, To: payee, Payment: kind, Amount: amount}})
	return err
}

// Deposit credits amount of kind to owner. It stands in for an on-ramp.
func (l *Ledger) Deposit(ctx context.Context, owner domain.Address, kind domain.PaymentAsset, amount uint64) error {
	if owner.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "cannot deposit to the zero address")
	}
	_, err := l.apply(ctx, []Leg{{Kind: LegDeposit, To: owner, Payment: kind, Amount: amount}})
	return err
}

// Settle applies every leg or none. Credit legs notify the receive hook after
// the balances have changed.
func (l *Ledger) Settle(ctx context.Context, operator domain.Address, legs ...Leg) error {
	for i := range legs {
		legs[i].Operator = operator
	}
	undo, err := l.apply(ctx, legs)
	if err != nil {
		return err
	}
	return l.notify(ctx, operator, legs, undo)
}

func (l *Ledger) checkKind(kind domain.PaymentAsset) error {
	if len(l.kinds) == 0 {
		return nil
	}
	if _, ok := l.kinds[kind]; !ok {
		return dErrors.New(dErrors.CodeUnsupportedAsset, "unsupported payment asset: "+kind.String())
	}
	return nil
}

// notify runs the receive hook without holding the ledger lock. When the hook
// fails outside a transaction the legs are reverted here; inside one the
// journal takes care of it.
func (l *Ledger) notify(ctx context.Context, operator domain.Address, legs []Leg, undo func()) error {
	l.mu.RLock()
	hook := l.hook
	l.mu.RUnlock()
	if hook == nil {
		return nil
	}
	for _, leg := range legs {
		if leg.Kind != LegCredit && leg.Kind != LegMint {
			continue
		}
		err := tx.Callback(ctx, func() error {
			return hook(ctx, operator, leg.From, leg.To, leg.Asset, leg.Amount)
		})
		if err != nil {
			if !tx.InTx(ctx) {
				undo()
			}
			return dErrors.Wrap(err, dErrors.CodeConflict, "receiver rejected transfer")
		}
	}
	return nil
}
