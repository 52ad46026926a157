// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"spark/internal/domain/entity"
	"spark/internal/domain/repository"
	"spark/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the
// refresh-token list in insertion order.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Preload("RefreshTokens", func(db *gorm.DB) *gorm.DB {
			return db.Order("refresh_tokens.created_at ASC")
		}).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Preload("RefreshTokens", func(db *gorm.DB) *gorm.DB {
			return db.Order("refresh_tokens.created_at ASC")
		}).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByRefreshToken retrieves the user whose refresh-token list contains the
// given token string.
func (repo *userRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	var tokenM model.RefreshTokenModel

	err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	return repo.FindByID(ctx, tokenM.UserID)
}

// Create persists a new user entity to the database and backfills the
// generated ID and timestamps.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEmailTaken
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update persists changes to the user's scalar fields. The refresh-token list
// is mutated only through the dedicated token operations.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":     user.Email,
			"password":  user.Password,
			"role":      user.Role.String(),
			"is_active": user.IsActive,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrEmailTaken
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a user row. Refresh tokens and the profile cascade at the
// database level, invalidating every session.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// AppendRefreshToken adds a refresh token to the user's list.
func (repo *userRepository) AppendRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	tokenM := &model.RefreshTokenModel{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to append refresh token")
	}

	return nil
}

// RemoveRefreshToken removes one matching token string from the user's list.
// Removing an absent token is a no-op, not an error.
func (repo *userRepository) RemoveRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.RefreshTokenModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to remove refresh token")
	}

	return nil
}

// ReplaceRefreshToken rotates oldToken to newToken in one transaction. The new
// token is appended only after the old one was located and removed; a failed
// rotation leaves the presented token valid.
func (repo *userRepository) ReplaceRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string, expiresAt time.Time) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND token = ?", userID, oldToken).
			Delete(&model.RefreshTokenModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to remove rotated refresh token")
		}
		if result.RowsAffected == 0 {
			return repository.ErrRefreshTokenNotFound
		}

		tokenM := &model.RefreshTokenModel{
			UserID:    userID,
			Token:     newToken,
			ExpiresAt: expiresAt,
		}

		return errors.Wrap(tx.Create(tokenM).Error, "failed to append rotated refresh token")
	})

	return err
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	tokens := make([]string, 0, len(data.RefreshTokens))
	for _, t := range data.RefreshTokens {
		tokens = append(tokens, t.Token)
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		Password:      data.Password,
		Role:          entity.Role(data.Role),
		IsActive:      data.IsActive,
		RefreshTokens: tokens,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	role := data.Role
	if role == "" {
		role = entity.RoleUser
	}

	return &model.UserModel{
		ID:       data.ID,
		Email:    data.Email,
		Password: data.Password,
		Role:     role.String(),
		IsActive: data.IsActive,
	}
}
