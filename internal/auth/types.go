package auth

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is the email format check used at registration and login.
// Deliberately loose: one @, no whitespace, a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength is the minimum accepted plaintext password length.
// Enforced by callers before hashing; the hash primitive accepts any string.
const MinPasswordLength = 6

// IsValidEmail checks if an email address meets format requirements.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleUser is a regular customer account. Can manage only its own products.
	RoleUser Role = "user"

	// RoleModerator can be granted to catalog curators. Sits between
	// user and admin for role-gated routes.
	RoleModerator Role = "moderator"

	// RoleAdmin has full control: all products, the user list, and
	// role assignment at registration.
	RoleAdmin Role = "admin"
)

// ValidRoles is the set of roles accepted at registration.
var ValidRoles = []Role{RoleUser, RoleModerator, RoleAdmin}

// IsValidRole returns true if the role is one of the enumerated account roles.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents an authenticated account.
// The password hash is never serialised outward.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
//
// The taxonomy follows four variants, mapped to HTTP responses at the API
// boundary: validation failures are produced by handlers directly,
// authentication failures collapse to a uniform denial (ErrInvalidCredentials
// never distinguishes unknown user from wrong password), authorisation
// failures are reported distinctly, and a missing signing secret is a fatal
// startup condition (see NewAuthority).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenMissing       = errors.New("no token presented")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrNotAuthenticated   = errors.New("request has no authenticated principal")
	ErrForbidden          = errors.New("insufficient role")
	ErrMissingSecret      = errors.New("signing secret is required")
)
