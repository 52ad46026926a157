package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "spark/internal/delivery/context"
	"spark/internal/domain/entity"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/domain/repository"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		profileRepo: params.ProfileRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProfile creates the dating profile attached to an account.
func (srv *profileService) CreateProfile(ctx context.Context, input usecase.CreateProfileInput) (*entity.Profile, error) {
	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if _, err := srv.profileRepo.FindByUserID(ctx, input.UserID); err == nil {
		return nil, domainerrors.New(domainerrors.TypeConflict, "Profile already exists.")
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to find profile by user id")
	}

	if !entity.GendersConsistent(input.Genders) {
		return nil, domainerrors.New(domainerrors.TypeValidation, "Genders are inconsistent.")
	}

	now := time.Now()
	profile := &entity.Profile{
		UserID:    input.UserID,
		Name:      input.Name,
		Age:       input.Age,
		Bio:       input.Bio,
		SexRole:   input.SexRole,
		Genders:   input.Genders,
		Pronouns:  input.Pronouns,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.profileRepo.Create(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to create profile")
	}

	srv.log(ctx).Info("Profile created", slog.String("user_id", input.UserID.String()))

	return profile, nil
}

// GetProfile retrieves the full profile of a user.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.New(domainerrors.TypeNotFound, "Profile not found.")
		}

		return nil, errors.Wrap(err, "failed to find profile by user id")
	}

	return profile, nil
}

// GetProfileSummary retrieves the compact card view of a profile.
func (srv *profileService) GetProfileSummary(ctx context.Context, userID uuid.UUID) (*usecase.ProfileSummary, error) {
	profile, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &usecase.ProfileSummary{
		UserID:      profile.UserID,
		Name:        profile.Name,
		Age:         profile.Age,
		MainPicture: profile.MainPicture(),
	}, nil
}

// UpdateProfile applies a partial update to the profile. Slices replace the
// stored set wholesale when present.
func (srv *profileService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.Profile, error) {
	profile, err := srv.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Age != nil {
		profile.Age = *input.Age
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.SexRole != nil {
		profile.SexRole = *input.SexRole
	}
	if input.Genders != nil {
		profile.Genders = input.Genders
	}
	if input.Pronouns != nil {
		profile.Pronouns = input.Pronouns
	}

	if !entity.GendersConsistent(profile.Genders) {
		return nil, domainerrors.New(domainerrors.TypeValidation, "Genders are inconsistent.")
	}

	profile.UpdatedAt = time.Now()

	if err := srv.profileRepo.Update(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.String("user_id", input.UserID.String()))

	return profile, nil
}
