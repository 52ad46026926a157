package postgres

import (
	"context"

	"spark/internal/domain/entity"
	"spark/internal/domain/repository"
	"spark/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Create persists a new profile for a user.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "profile already exists for user")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to create profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByUserID retrieves a user's profile with associations preloaded in
// display order.
func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel

	err := repo.db.WithContext(ctx).
		Preload("Genders").
		Preload("Pronouns").
		Preload("Pictures", func(db *gorm.DB) *gorm.DB {
			return db.Order("pictures.position ASC")
		}).
		Preload("Albums", func(db *gorm.DB) *gorm.DB {
			return db.Order("albums.position ASC")
		}).
		Where("user_id = ?", userID).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by user id")
	}

	return toProfileDomain(&profileM), nil
}

// Update modifies the profile's scalar fields and replaces the gender and
// pronoun selections.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&model.ProfileModel{}).
			Where("user_id = ?", profile.UserID).
			Updates(map[string]any{
				"name":     profile.Name,
				"age":      profile.Age,
				"bio":      profile.Bio,
				"sex_role": string(profile.SexRole),
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to update profile")
		}
		if result.RowsAffected == 0 {
			return repository.ErrProfileNotFound
		}

		if err := tx.Where("profile_id = ?", profile.ID).Delete(&model.GenderModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear profile genders")
		}
		for _, g := range profile.Genders {
			genderM := &model.GenderModel{ProfileID: profile.ID, Name: string(g)}
			if err := tx.Create(genderM).Error; err != nil {
				return errors.Wrap(err, "failed to store profile gender")
			}
		}

		if err := tx.Where("profile_id = ?", profile.ID).Delete(&model.PronounModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear profile pronouns")
		}
		for _, p := range profile.Pronouns {
			pronounM := &model.PronounModel{ProfileID: profile.ID, Name: p}
			if err := tx.Create(pronounM).Error; err != nil {
				return errors.Wrap(err, "failed to store profile pronoun")
			}
		}

		return nil
	})
}

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	genders := make([]entity.Gender, 0, len(data.Genders))
	for _, g := range data.Genders {
		genders = append(genders, entity.Gender(g.Name))
	}

	pronouns := make([]string, 0, len(data.Pronouns))
	for _, p := range data.Pronouns {
		pronouns = append(pronouns, p.Name)
	}

	pictures := make([]entity.Picture, 0, len(data.Pictures))
	for _, pic := range data.Pictures {
		pictures = append(pictures, entity.Picture{
			ID:      pic.ID,
			AlbumID: pic.AlbumID,
			URL:     pic.URL,
			Order:   pic.Position,
		})
	}

	albums := make([]entity.Album, 0, len(data.Albums))
	for _, a := range data.Albums {
		albums = append(albums, entity.Album{
			ID:        a.ID,
			ProfileID: a.ProfileID,
			Name:      a.Name,
			Order:     a.Position,
		})
	}

	return &entity.Profile{
		ID:        data.ID,
		UserID:    data.UserID,
		Name:      data.Name,
		Age:       data.Age,
		Bio:       data.Bio,
		SexRole:   entity.SexRole(data.SexRole),
		Genders:   genders,
		Pronouns:  pronouns,
		Pictures:  pictures,
		Albums:    albums,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		ID:      data.ID,
		UserID:  data.UserID,
		Name:    data.Name,
		Age:     data.Age,
		Bio:     data.Bio,
		SexRole: string(data.SexRole),
	}
}
