package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "vollmed/internal/errors"
	"vollmed/internal/model"
	"vollmed/internal/repository"
)

// Context keys for the authenticated identity and the bearer token it came from.
const (
	identityKey = "identity"
	rawTokenKey = "identity_token"
)

// lookupError marks a failure to resolve the token's user that is not the
// caller's fault (the credential store being unreachable, say). The gate
// propagates it instead of degrading the request to anonymous.
type lookupError struct {
	err error
}

func (e *lookupError) Error() string { return "identity lookup: " + e.err.Error() }

func (e *lookupError) Unwrap() error { return e.err }

// Gate builds the once-per-request authentication middleware. When a bearer
// token is present it is verified, checked against the denylist and resolved
// to a user record; the identity then rides the echo context for the rest of
// the request. The gate itself never rejects: anonymous and bad-token requests
// continue, and RequireAuth/RequireRole raise the failure at the routes that
// actually need an identity.
func Gate(tokens *TokenService, store TokenStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             identityKey,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// Missing or bad tokens degrade to anonymous; infrastructure
			// failures surface as-is so the client sees an outage, not a 401.
			var lookupErr *lookupError
			if errors.As(err, &lookupErr) {
				return lookupErr.err
			}
			return nil
		},
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := tokens.Verify(tokenString)
			if err != nil {
				return nil, err
			}

			ctx := c.Request().Context()
			if revoked, _ := store.IsRevoked(ctx, tokenString); revoked {
				return nil, apperrors.ErrInvalidToken
			}

			user, err := users.FindByLogin(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrInvalidToken
				}
				return nil, &lookupError{err: err}
			}

			c.Set(rawTokenKey, tokenString)
			return user, nil
		},
	})
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(identityKey).(*model.User)
	return user
}

// RawToken returns the bearer token the current identity was established from.
func RawToken(c echo.Context) string {
	token, _ := c.Get(rawTokenKey).(string)
	return token
}

// RequireAuth rejects requests that did not establish an identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return apperrors.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// RequireRole rejects authenticated users lacking the given role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.ErrUnauthenticated
			}
			if user.Role != role {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}
