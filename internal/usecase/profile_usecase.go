package usecase

import (
	"context"

	"spark/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProfileInput defines the data required to create a dating profile.
type CreateProfileInput struct {
	UserID   uuid.UUID
	Name     string
	Age      int
	Bio      string
	SexRole  entity.SexRole
	Genders  []entity.Gender
	Pronouns []string
}

// UpdateProfileInput defines a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Name     *string
	Age      *int
	Bio      *string
	SexRole  *entity.SexRole
	Genders  []entity.Gender
	Pronouns []string
}

// ProfileSummary is the compact card view of a profile used in listings.
type ProfileSummary struct {
	UserID      uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	Age         int             `json:"age"`
	MainPicture *entity.Picture `json:"mainPicture,omitempty"`
}

// ProfileUsecase defines the interface for dating-profile operations.
type ProfileUsecase interface {
	// CreateProfile creates the profile attached to a user account. Each
	// account has at most one profile.
	CreateProfile(ctx context.Context, input CreateProfileInput) (*entity.Profile, error)

	// GetProfile retrieves the full profile of a user.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// GetProfileSummary retrieves the compact card view of a profile.
	GetProfileSummary(ctx context.Context, userID uuid.UUID) (*ProfileSummary, error)

	// UpdateProfile applies a partial update to the profile.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.Profile, error)
}
