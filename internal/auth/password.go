package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the bcrypt work factor (2^10 rounds).
// High enough to resist offline brute force, low enough that interactive
// login latency stays well under a second.
const bcryptCost = 10

// HashPassword hashes a plaintext password using bcrypt.
//
// Each call generates a fresh random salt, so hashing the same password
// twice yields different outputs. The salt and cost factor are embedded
// in the returned hash string, so verification needs no side-channel
// storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
//
// The comparison is constant-time. A malformed stored hash is treated as
// a verification failure, never an error: from the caller's perspective
// the credential simply does not match.
func CheckPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
