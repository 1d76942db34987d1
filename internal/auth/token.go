package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
)

const (
	// TokenIssuer identifies tokens minted by this API.
	TokenIssuer = "API Voll.med"
	// TokenExpiry is the fixed lifetime of every issued token.
	TokenExpiry = 2 * time.Hour
)

// Claims carried by every issued token. The token holds a copy of the
// identity, not a reference: the subject is the login, the id claim the
// user's primary key.
type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens with a process-wide symmetric
// secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Generate issues a signed token for the user, expiring in TokenExpiry.
func (s *TokenService) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   user.Login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the claims. Every
// failure collapses into apperrors.ErrInvalidToken; callers get no hint which
// check failed.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Issuer != TokenIssuer {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
