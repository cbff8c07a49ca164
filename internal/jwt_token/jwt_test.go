package jwttoken

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/requestcontext"
)

var holder = domain.Address("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")

func newService() *JWTService {
	return NewJWTService("test-signing-key", "carbonledger-test", time.Hour)
}

func Test_GenerateAndValidate(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken(context.Background(), holder)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, holder.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_GenerateRejectsZeroAddress(t *testing.T) {
	_, err := newService().GenerateAccessToken(context.Background(), domain.ZeroAddress)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func Test_ValidateToken_Expired(t *testing.T) {
	svc := newService()
	past := requestcontext.WithTime(context.Background(), time.Now().Add(-2*time.Hour))
	token, err := svc.GenerateAccessToken(past, holder)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorContains(t, err, "token expired")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_WrongKeyOrIssuer(t *testing.T) {
	token, err := NewJWTService("other-key", "carbonledger-test", time.Hour).GenerateAccessToken(context.Background(), holder)
	require.NoError(t, err)
	_, err = newService().ValidateToken(token)
	require.ErrorContains(t, err, "invalid token")

	token, err = NewJWTService("test-signing-key", "someone-else", time.Hour).GenerateAccessToken(context.Background(), holder)
	require.NoError(t, err)
	_, err = newService().ValidateToken(token)
	require.ErrorContains(t, err, "invalid token")
}

func Test_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: holder.String(), Issuer: "carbonledger-test"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.Error(t, err)
}

func Test_ValidatorAdapter(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateAccessToken(context.Background(), holder)
	require.NoError(t, err)

	claims, err := NewValidator(svc).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, holder.String(), claims.Subject)
}
