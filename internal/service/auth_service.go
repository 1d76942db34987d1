package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vollmed/internal/auth"
	apperrors "vollmed/internal/errors"
	"vollmed/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, login, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		tokenStore: tokenStore,
	}
}

// Login checks the credentials and issues a bearer token. Unknown logins and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Logout denylists the presented token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}
	return s.tokenStore.Revoke(ctx, token, time.Until(claims.ExpiresAt.Time))
}
