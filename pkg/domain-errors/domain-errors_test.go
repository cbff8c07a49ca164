package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite covers the error primitives every ledger operation returns
// through: code matching, reason narrowing and detail propagation.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "project not found"}
		s.Equal("project not found", err.Error())
	})

	s.Run("falls back to reason then code", func() {
		s.Equal("not_verified", (&Error{Code: CodePrecondition, Reason: ReasonNotVerified}).Error())
		s.Equal("not_found", (&Error{Code: CodeNotFound}).Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeTerminalState, Reason: ReasonAlreadyVerified}
		err2 := &Error{Code: CodeTerminalState, Reason: ReasonListingNotActive}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes or plain errors", func() {
		err := &Error{Code: CodeNotFound}
		s.False(err.Is(&Error{Code: CodeInternal}))
		s.False(err.Is(errors.New("not found")))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeNotFound, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		s.True(errors.Is(wrapped, &Error{Code: CodeNotFound}))
	})
}

func (s *DomainErrorsSuite) TestNewReason() {
	err := NewReason(CodeCapacityExceeded, ReasonExceedsCeiling, "issuance exceeds ceiling",
		"requested", uint64(11), "remaining", uint64(10), 42, "ignored")

	s.True(HasCode(err, CodeCapacityExceeded))
	s.True(HasReason(err, ReasonExceedsCeiling))
	requested, ok := Detail(err, "requested")
	s.Require().True(ok)
	s.Equal(uint64(11), requested)
	remaining, ok := Detail(err, "remaining")
	s.Require().True(ok)
	s.Equal(uint64(10), remaining)
	_, ok = Detail(err, "missing")
	s.False(ok)
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves code, reason and details of a domain error", func() {
		original := NewReason(CodeUnauthorized, ReasonPrincipalMismatch, "caller is not bound", "expected", "0xabc")
		wrapped := Wrap(original, CodeInternal, "certification rejected")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeUnauthorized, domainErr.Code)
		s.Equal(ReasonPrincipalMismatch, domainErr.Reason)
		s.Equal("certification rejected", domainErr.Message)
		expected, ok := Detail(wrapped, "expected")
		s.True(ok)
		s.Equal("0xabc", expected)
	})

	s.Run("uses provided code when wrapping non-domain error", func() {
		original := errors.New("database timeout")
		wrapped := Wrap(original, CodeInternal, "store error")

		s.True(HasCode(wrapped, CodeInternal))
		s.True(errors.Is(wrapped, original))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.False(HasCode(nil, CodeNotFound))
	s.False(HasCode(errors.New("regular error"), CodeNotFound))
	s.False(HasReason(nil, ReasonFeeTooHigh))
	s.True(HasCode(Wrap(New(CodeNotFound, "original"), CodeInternal, "wrapped"), CodeNotFound))
}
