// Package auth provides authentication and authorisation for the HuertoHogar API.
//
// It implements a 3-tier role model (user → moderator → admin) with:
//   - bcrypt password hashing (cost 10, salt embedded in the hash)
//   - Stateless HS256 JWT bearer tokens with a fixed 24-hour expiry
//   - An enumerated Role type with set-membership checks (no free-form
//     role strings)
//   - A Postgres-backed user store reached only through the UserRepository
//     interface
//
// Tokens are never persisted server-side and there is no revocation list:
// a token issued before an account is deleted or demoted remains valid
// until its natural expiry. This is a deliberate, documented limitation.
//
// The Authority is constructed once at startup from explicit configuration;
// a missing signing secret is a fatal construction error, never a
// per-request condition.
package auth
