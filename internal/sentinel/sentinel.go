package sentinel

import "errors"

// Sentinel dependency errors. Stores and collaborators return these (optionally wrapped)
// so services can translate them into domain errors exactly once.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotApproved         = errors.New("not approved")
	ErrUnavailable         = errors.New("unavailable")
)
