package model

import "time"

// Roles carried in the access token's role claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account as stored in the `users` table.  Only ADMIN
// accounts can reach the management endpoints; USER accounts exist so that
// visitors can register, but booking itself needs no account.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hash of the password.
//  Role         – USER or ADMIN.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
