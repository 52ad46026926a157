package repository

import (
	"context"
	"errors"

	"spark/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the standard operations for profile persistence.
type ProfileRepository interface {
	// Create persists a new, empty profile for the given user.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByUserID retrieves a user's profile with genders, pronouns, pictures
	// and albums preloaded in display order.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Update modifies an existing profile.
	Update(ctx context.Context, profile *entity.Profile) error
}
