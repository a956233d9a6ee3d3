package auth

import (
	"context"
	"errors"
	"fmt"
)

// Session is the outcome of a successful registration or login:
// the persisted user and a freshly issued bearer token.
type Session struct {
	User  *User
	Token string
}

// Service implements the registration and login pipelines on top of the
// user store, the credential hasher, and the token authority.
//
// Field validation (required fields, email format, password length) is the
// caller's responsibility; the service assumes syntactically valid input.
type Service struct {
	users  UserRepository
	tokens *Authority
}

// NewService constructs an auth Service.
func NewService(users UserRepository, tokens *Authority) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account and issues its first token.
//
// The plaintext password is hashed before it ever reaches the store.
// A duplicate email yields ErrEmailExists, both from the pre-check and
// from the unique index backstop on concurrent registration.
func (s *Service) Register(ctx context.Context, email, password, username string, role Role) (*Session, error) {
	// Pre-check for an existing account; the unique index catches races.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token.
//
// An unknown email and a wrong password both collapse to
// ErrInvalidCredentials: the response never reveals whether the account
// exists.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{User: user, Token: token}, nil
}
