package domain

import (
	"strings"

	dErrors "carbonledger/pkg/domain-errors"
)

// Role is a capability tag checked against a principal before privileged operations.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleIssuer         Role = "issuer"
	RoleVerifier       Role = "verifier"
	RoleVerifiedSeller Role = "verified_seller"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:          {},
	RoleIssuer:         {},
	RoleVerifier:       {},
	RoleVerifiedSeller: {},
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownRoles[r]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+s)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// PaymentAsset names a stablecoin-equivalent payment kind, e.g. USDC.
type PaymentAsset string

func ParsePaymentAsset(s string) (PaymentAsset, error) {
	kind := strings.ToUpper(strings.TrimSpace(s))
	if kind == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "payment asset cannot be empty")
	}
	return PaymentAsset(kind), nil
}

func (p PaymentAsset) String() string { return string(p) }
