package assets

import (
	"context"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
)

// LegKind selects which balance table a Leg touches.
type LegKind int

const (
	// LegCredit moves credit units between holders.
	LegCredit LegKind = iota
	// LegPayment pulls payment units from a payer that approved the operator.
	LegPayment
	LegMint
	LegBurn
	LegDeposit
)

// Leg is one balance movement inside an atomic settlement.
type Leg struct {
	Kind     LegKind
	Operator domain.Address
	From     domain.Address
	To       domain.Address
	Asset    domain.AssetID
	Payment  domain.PaymentAsset
	Amount   uint64
}

// CreditLeg moves amount of asset from seller to buyer.
func CreditLeg(from, to domain.Address, asset domain.AssetID, amount uint64) Leg {
	return Leg{Kind: LegCredit, From: from, To: to, Asset: asset, Amount: amount}
}

// PaymentLeg pulls amount of kind from payer to payee.
func PaymentLeg(kind domain.PaymentAsset, payer, payee domain.Address, amount uint64) Leg {
	return Leg{Kind: LegPayment, From: payer, To: payee, Payment: kind, Amount: amount}
}

type creditKey struct {
	owner domain.Address
	asset domain.AssetID
}

type paymentKey struct {
	owner domain.Address
	kind  domain.PaymentAsset
}

// simulation tracks balances as they would be after the legs seen so far,
// without touching the ledger.
type simulation struct {
	l          *Ledger
	credits    map[creditKey]uint64
	payments   map[paymentKey]uint64
	allowances map[allowanceKey]uint64
	supply     map[domain.AssetID]uint64
}

func (l *Ledger) newSimulation() *simulation {
	return &simulation{
		l:          l,
		credits:    make(map[creditKey]uint64),
		payments:   make(map[paymentKey]uint64),
		allowances: make(map[allowanceKey]uint64),
		supply:     make(map[domain.AssetID]uint64),
	}
}

func (s *simulation) credit(k creditKey) uint64 {
	if v, ok := s.credits[k]; ok {
		return v
	}
	return s.l.credits[k.owner][k.asset]
}

func (s *simulation) payment(k paymentKey) uint64 {
	if v, ok := s.payments[k]; ok {
		return v
	}
	return s.l.payments[k.owner][k.kind]
}

func (s *simulation) allowance(k allowanceKey) uint64 {
	if v, ok := s.allowances[k]; ok {
		return v
	}
	return s.l.allowances[k]
}

func (s *simulation) totalSupply(a domain.AssetID) uint64 {
	if v, ok := s.supply[a]; ok {
		return v
	}
	return s.l.supply[a]
}

func (s *simulation) step(leg Leg) error {
	if leg.Amount == 0 {
		return nil
	}
	switch leg.Kind {
	case LegMint:
		next, err := domain.AddAmount(s.totalSupply(leg.Asset), leg.Amount)
		if err != nil {
			return err
		}
		s.supply[leg.Asset] = next
		return s.addCredit(creditKey{leg.To, leg.Asset}, leg.Amount)
	case LegBurn:
		if err := s.authorizeOperator(leg); err != nil {
			return err
		}
		if err := s.debitCredit(leg); err != nil {
			return err
		}
		s.supply[leg.Asset] = s.totalSupply(leg.Asset) - leg.Amount
		return nil
	case LegCredit:
		if leg.To.IsZero() {
			return dErrors.New(dErrors.CodeInvalidInput, "cannot transfer to the zero address")
		}
		if err := s.authorizeOperator(leg); err != nil {
			return err
		}
		if err := s.debitCredit(leg); err != nil {
			return err
		}
		return s.addCredit(creditKey{leg.To, leg.Asset}, leg.Amount)
	case LegPayment:
		if leg.To.IsZero() {
			return dErrors.New(dErrors.CodeInvalidInput, "cannot pay the zero address")
		}
		if err := s.l.checkKind(leg.Payment); err != nil {
			return err
		}
		if leg.Operator != leg.From {
			key := allowanceKey{leg.From, leg.Operator, leg.Payment}
			allowed := s.allowance(key)
			if allowed < leg.Amount {
				return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonInsufficientApproval,
					"insufficient payment allowance",
					"actor", leg.Operator, "owner", leg.From, "payment_asset", leg.Payment,
					"requested", leg.Amount, "available", allowed)
			}
			s.allowances[key] = allowed - leg.Amount
		}
		from := paymentKey{leg.From, leg.Payment}
		have := s.payment(from)
		if have < leg.Amount {
			return dErrors.NewReason(dErrors.CodeInsufficientBalance, "", "insufficient payment balance",
				"holder", leg.From, "payment_asset", leg.Payment, "requested", leg.Amount, "available", have)
		}
		s.payments[from] = have - leg.Amount
		return s.addPayment(paymentKey{leg.To, leg.Payment}, leg.Amount)
	case LegDeposit:
		if err := s.l.checkKind(leg.Payment); err != nil {
			return err
		}
		return s.addPayment(paymentKey{leg.To, leg.Payment}, leg.Amount)
	default:
		return dErrors.New(dErrors.CodeInternal, "unknown settlement leg")
	}
}

func (s *simulation) authorizeOperator(leg Leg) error {
	if leg.Operator == leg.From || s.l.operators[leg.From][leg.Operator] {
		return nil
	}
	return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonInsufficientApproval,
		"operator is not approved by holder", "actor", leg.Operator, "expected", leg.From)
}

func (s *simulation) debitCredit(leg Leg) error {
	key := creditKey{leg.From, leg.Asset}
	have := s.credit(key)
	if have < leg.Amount {
		return dErrors.NewReason(dErrors.CodeInsufficientBalance, "", "insufficient credit balance",
			"holder", leg.From, "asset_id", leg.Asset, "requested", leg.Amount, "available", have)
	}
	s.credits[key] = have - leg.Amount
	return nil
}

func (s *simulation) addCredit(key creditKey, amount uint64) error {
	next, err := domain.AddAmount(s.credit(key), amount)
	if err != nil {
		return err
	}
	s.credits[key] = next
	return nil
}

func (s *simulation) addPayment(key paymentKey, amount uint64) error {
	next, err := domain.AddAmount(s.payment(key), amount)
	if err != nil {
		return err
	}
	s.payments[key] = next
	return nil
}

// commit copies the simulated balances into the ledger. Caller holds l.mu.
func (s *simulation) commit() {
	for k, v := range s.credits {
		if s.l.credits[k.owner] == nil {
			s.l.credits[k.owner] = make(map[domain.AssetID]uint64)
		}
		s.l.credits[k.owner][k.asset] = v
	}
	for k, v := range s.payments {
		if s.l.payments[k.owner] == nil {
			s.l.payments[k.owner] = make(map[domain.PaymentAsset]uint64)
		}
		s.l.payments[k.owner][k.kind] = v
	}
	for k, v := range s.allowances {
		s.l.allowances[k] = v
	}
	for k, v := range s.supply {
		s.l.supply[k] = v
	}
}

// snapshot captures the current values of every entry the simulation will
// overwrite, so the write can be undone. Caller holds l.mu.
func (s *simulation) snapshot() *simulation {
	prev := s.l.newSimulation()
	for k := range s.credits {
		prev.credits[k] = s.l.credits[k.owner][k.asset]
	}
	for k := range s.payments {
		prev.payments[k] = s.l.payments[k.owner][k.kind]
	}
	for k := range s.allowances {
		prev.allowances[k] = s.l.allowances[k]
	}
	for k := range s.supply {
		prev.supply[k] = s.l.supply[k]
	}
	return prev
}

// apply validates every leg against the simulated state and commits only if
// all of them succeed. The returned undo restores the previous values.
func (l *Ledger) apply(ctx context.Context, legs []Leg) (undo func(), err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sim := l.newSimulation()
	for _, leg := range legs {
		if err := sim.step(leg); err != nil {
			return nil, err
		}
	}
	prev := sim.snapshot()
	sim.commit()
	undo = func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		prev.commit()
	}
	tx.Record(ctx, undo)
	return undo, nil
}
