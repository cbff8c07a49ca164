package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/requestcontext"
)

const testSubject = "0x00000000000000000000000000000000000000AA"

// MockTokenValidator is a testify mock for TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenString string) (*Claims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockHandler captures whether it was called and the context it saw.
type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	validator   *MockTokenValidator
	nextHandler *mockHandler
	middleware  func(http.Handler) http.Handler
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.validator = new(MockTokenValidator)
	s.nextHandler = &mockHandler{}
	s.middleware = RequireAuth(s.validator, slog.Default())
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.validator.AssertExpectations(s.T())
}

func (s *AuthMiddlewareTestSuite) makeRequest(authHeader string) *httptest.ResponseRecorder {
	handler := s.middleware(s.nextHandler)
	req := httptest.NewRequest(http.MethodPost, "/listings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestValidTokenBindsPrincipal() {
	s.validator.On("ValidateToken", "valid-token").Return(&Claims{Subject: testSubject, JTI: "jti-1"}, nil)

	w := s.makeRequest("Bearer valid-token")

	require.True(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	addr, ok := requestcontext.Principal(s.nextHandler.context)
	require.True(s.T(), ok)
	assert.Equal(s.T(), domain.Address("0x00000000000000000000000000000000000000aa"), addr)
}

func (s *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := s.makeRequest("")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Missing or invalid Authorization header")
}

func (s *AuthMiddlewareTestSuite) TestNonBearerScheme() {
	w := s.makeRequest("Basic dXNlcjpwYXNz")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestInvalidToken() {
	s.validator.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))

	w := s.makeRequest("Bearer bad")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Invalid or expired token")
}

func (s *AuthMiddlewareTestSuite) TestMalformedOrZeroSubject() {
	s.validator.On("ValidateToken", "not-an-address").Return(&Claims{Subject: "alice"}, nil)
	s.validator.On("ValidateToken", "zero").Return(&Claims{Subject: string(domain.ZeroAddress)}, nil)

	assert.Equal(s.T(), http.StatusUnauthorized, s.makeRequest("Bearer not-an-address").Code)
	assert.Equal(s.T(), http.StatusUnauthorized, s.makeRequest("Bearer zero").Code)
	assert.False(s.T(), s.nextHandler.called)
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
