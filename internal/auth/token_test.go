package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
)

func signClaims(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestTokenService_GenerateAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")
	user := &model.User{ID: 42, Login: "ana.souza"}

	token, err := svc.Generate(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana.souza", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_VerifyRejections(t *testing.T) {
	svc := NewTokenService("test-secret")

	expired := signClaims(t, "test-secret", &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "ana.souza",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	wrongIssuer := signClaims(t, "test-secret", &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone else",
			Subject:   "ana.souza",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	otherSecret, err := NewTokenService("other-secret").Generate(&model.User{ID: 1, Login: "ana.souza"})
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired token", expired},
		{"wrong issuer", wrongIssuer},
		{"wrong secret", otherSecret},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
