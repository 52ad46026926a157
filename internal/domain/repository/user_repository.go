// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"spark/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a create or update collides with an
	// existing email. The usecase layer normally catches duplicates with a
	// prior lookup; this is the backstop for the storage-level race.
	ErrEmailTaken = errors.New("email already taken")
	// ErrRefreshTokenNotFound is returned when a rotation cannot locate the
	// old refresh token.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByRefreshToken retrieves the user whose refresh-token list contains
	// the given token string.
	FindByRefreshToken(ctx context.Context, token string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user and everything attached to it, including the
	// refresh-token list (which invalidates all of the user's sessions).
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendRefreshToken adds a refresh token to the user's list.
	AppendRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error

	// RemoveRefreshToken removes exactly one matching token string from the
	// user's list. Removing a token that is not present is a no-op.
	RemoveRefreshToken(ctx context.Context, userID uuid.UUID, token string) error

	// ReplaceRefreshToken atomically swaps oldToken for newToken in the user's
	// list. A failed swap leaves the old token in place; the user is never
	// left without the token they presented.
	ReplaceRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string, expiresAt time.Time) error
}
