// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record at the center of the system.
type User struct {
	ID            uuid.UUID // The unique identifier for the user.
	Email         string    // The user's login identifier. Unique across all users.
	Password      string    // The bcrypt hash of the user's password. Never stored or transmitted in plaintext.
	Role          Role      // The user's role, e.g. "user" or "admin".
	IsActive      bool      // Whether the account is currently active.
	RefreshTokens []string  // The ordered list of currently valid refresh-token strings, one per session/device.
	CreatedAt     time.Time // Timestamp of when this account was created.
	UpdatedAt     time.Time // Timestamp of the last modification to this account.
}

// PublicUser is the client-safe projection of a User. It is the only
// representation ever returned to a client: password, refresh tokens and role
// are omitted.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Redact strips the secret fields from a User. Every response-bound user must
// pass through here; handlers never serialize a raw User.
func (u *User) Redact() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HasRefreshToken reports whether token is currently in the user's
// refresh-token list. List membership is the revocation mechanism.
func (u *User) HasRefreshToken(token string) bool {
	for _, t := range u.RefreshTokens {
		if t == token {
			return true
		}
	}

	return false
}

// Session is the access-token claim set: the public-safe subset of User fields
// embedded in a signed token. It is minted at sign-in/refresh and reconstructed
// by the authorization middleware on each protected request, never stored
// server-side.
type Session struct {
	UserID uuid.UUID
	Email  string
}
