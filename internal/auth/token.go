package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is the fixed bearer token lifetime.
const DefaultTokenExpiry = 24 * time.Hour

// Claims extends JWT standard claims with the HuertoHogar identity fields.
// Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// HasRole performs a set-membership test of the claims' role against the
// allowed set. An empty allowed set matches nothing.
func (c *Claims) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Authority issues and verifies signed bearer tokens.
//
// It holds the server signing secret and token lifetime, both fixed at
// construction. All methods are safe for concurrent use: verification and
// issuance are pure computations over immutable state.
type Authority struct {
	secret []byte
	expiry time.Duration
}

// NewAuthority creates a token authority with the given signing secret and
// token lifetime.
//
// An empty secret is a configuration error, not a user-facing one: the
// surrounding service must treat it as fatal at startup rather than handle
// it per-request. A non-positive expiry falls back to DefaultTokenExpiry.
func NewAuthority(secret string, expiry time.Duration) (*Authority, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &Authority{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

// Issue creates a signed JWT for a user, encoding identity and role.
//
// Claims: subject (user ID), email, role, issued-at, and expiry at
// issued-at plus the configured lifetime.
func (a *Authority) Issue(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates a bearer token's signature and expiry and returns its claims.
//
// Rejection reasons are distinguished for observability: an expired token
// yields ErrTokenExpired, anything else (malformed, tampered, wrong
// algorithm, missing fields) yields ErrTokenInvalid. The API boundary
// collapses both to the same unauthorised response.
func (a *Authority) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	if claims.Role == "" {
		return nil, fmt.Errorf("%w: missing role", ErrTokenInvalid)
	}

	return claims, nil
}
