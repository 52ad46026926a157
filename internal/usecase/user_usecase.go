// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"spark/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to create a new account.
type SignUpInput struct {
	Email    string
	Password string
}

// SignInInput defines the data required for a user to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// SignOutInput carries the refresh token of the session being ended.
type SignOutInput struct {
	RefreshToken string
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
}

// UpdateEmailInput defines an authenticated email change.
type UpdateEmailInput struct {
	UserID         uuid.UUID
	NewEmail       string
	ActualPassword string
}

// UpdatePasswordInput defines an authenticated password change.
type UpdatePasswordInput struct {
	UserID            uuid.UUID
	ActualPassword    string
	NewPassword       string
	RepeatNewPassword string
}

// DeleteAccountInput defines an authenticated account deletion.
type DeleteAccountInput struct {
	UserID         uuid.UUID
	ActualPassword string
}

// --- Output DTOs ---

// SignUpOutput returns the newly created user.
type SignUpOutput struct {
	User *entity.User
}

// SignInOutput returns the signed-in user together with freshly minted tokens.
type SignInOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RefreshOutput returns the rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for account-lifecycle business operations.
// This is the contract that the delivery layer (HTTP handlers) depends on.
type UserUsecase interface {
	// SignUp creates a new account. Fails with a validation error when the
	// email is already taken.
	SignUp(ctx context.Context, input SignUpInput) (*SignUpOutput, error)

	// SignIn verifies credentials and mints an access/refresh token pair,
	// appending the refresh token to the user's session list.
	SignIn(ctx context.Context, input SignInInput) (*SignInOutput, error)

	// SignOut revokes the presented refresh token. Revoking a token that was
	// already removed is a no-op.
	SignOut(ctx context.Context, input SignOutInput) error

	// Refresh rotates the presented refresh token exactly once and mints a new
	// access token. A failed rotation leaves the presented token valid.
	Refresh(ctx context.Context, input RefreshInput) (*RefreshOutput, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateEmail changes the account email after re-verifying the password.
	UpdateEmail(ctx context.Context, input UpdateEmailInput) (*entity.User, error)

	// UpdatePassword changes the account password after re-verifying the
	// current one.
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) (*entity.User, error)

	// DeleteAccount removes the account and all of its sessions.
	DeleteAccount(ctx context.Context, input DeleteAccountInput) error
}
