package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in ledger terms, not HTTP terms.
type Code string

const (
	CodeNotFound            Code = "not_found"
	CodeTerminalState       Code = "terminal_state"
	CodeCapacityExceeded    Code = "capacity_exceeded"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeUnauthorized        Code = "unauthorized"
	CodeForbidden           Code = "forbidden"
	CodeInvalidInput        Code = "invalid_input"
	CodeUnsupportedAsset    Code = "unsupported_asset"
	CodePrecondition        Code = "precondition_failed"
	CodeConflict            Code = "conflict"
	CodeTimeout             Code = "timeout"
	CodeInternal            Code = "internal_error"
)

// Reason narrows a Code to the operation-level failure so callers can render
// a precise message without string matching.
type Reason string

const (
	ReasonAlreadyVerified      Reason = "already_verified"
	ReasonAlreadyFullyRetired  Reason = "already_fully_retired"
	ReasonListingNotActive     Reason = "listing_not_active"
	ReasonNotVerified          Reason = "not_verified"
	ReasonExceedsCeiling       Reason = "exceeds_ceiling"
	ReasonExceedsAvailable     Reason = "exceeds_available"
	ReasonBatchIndexExhausted  Reason = "batch_index_exhausted"
	ReasonRevokedCertifier     Reason = "revoked_certifier"
	ReasonFeeTooHigh           Reason = "fee_too_high"
	ReasonProjectNotFound      Reason = "project_not_found"
	ReasonReentrantCall        Reason = "reentrant_call"
	ReasonArithmeticOverflow   Reason = "arithmetic_overflow"
	ReasonMissingCapability    Reason = "missing_capability"
	ReasonPrincipalMismatch    Reason = "principal_mismatch"
	ReasonInsufficientApproval Reason = "insufficient_approval"
	ReasonFeeCollectorUnset    Reason = "fee_collector_unset"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Reason  Reason
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Reason != "" {
		return string(e.Reason)
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NewReason creates a domain error carrying an operation-level reason and
// structured details. kv is a flat list of key/value pairs.
func NewReason(code Code, reason Reason, msg string, kv ...any) error {
	return &Error{Code: code, Reason: reason, Message: msg, Details: toDetails(kv)}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code, reason
// and details are preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Reason: existing.Reason, Message: msg, Details: existing.Details, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// HasReason checks if an error is a domain error with the given reason.
func HasReason(err error, reason Reason) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason == reason
	}
	return false
}

// Detail returns a structured detail attached to a domain error.
func Detail(err error, key string) (any, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Details == nil {
		return nil, false
	}
	v, ok := e.Details[key]
	return v, ok
}

func toDetails(kv []any) map[string]any {
	if len(kv) == 0 {
		return nil
	}
	details := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		details[key] = kv[i+1]
	}
	return details
}
