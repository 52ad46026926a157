// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "spark/internal/delivery/context"
	"spark/internal/domain/entity"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/domain/repository"
	"spark/internal/domain/service"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp creates a new account after checking the email is free. The lookup
// and the insert run in one transaction so concurrent sign-ups with the same
// email cannot both succeed.
func (srv *userService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	srv.log(ctx).Info("Starting sign-up", slog.String("email", input.Email))

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	var created *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.New(domainerrors.TypeValidation, "User already exists.")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		now := time.Now()
		user := &entity.User{
			ID:        uuid.New(),
			Email:     input.Email,
			Password:  hashed,
			Role:      entity.RoleUser,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			// The unique index is the last line of defense against a race the
			// lookup above did not see.
			if errors.Is(err, repository.ErrEmailTaken) {
				return domainerrors.New(domainerrors.TypeValidation, "User already exists.")
			}

			return errors.Wrap(err, "failed to create user")
		}

		created = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User signed up", slog.String("user_id", created.ID.String()))

	return &usecase.SignUpOutput{User: created}, nil
}

// SignIn verifies the credentials and mints a token pair. The refresh token is
// appended to the user's session list before it is handed out, so a token the
// client holds is always a token the store knows about.
func (srv *userService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		return nil, domainerrors.New(domainerrors.TypeValidation, "Password is wrong.")
	}

	accessToken, err := srv.tokenService.IssueAccessToken(entity.Session{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	expiresAt := time.Now().Add(srv.tokenService.RefreshTokenTTL())
	if err := srv.userRepo.AppendRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, errors.Wrap(err, "failed to append refresh token")
	}

	srv.log(ctx).Info("User signed in", slog.String("user_id", user.ID.String()))

	return &usecase.SignInOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SignOut revokes the presented refresh token. The token is looked up first so
// a token that never belonged to anyone is reported, but removing a token that
// was already revoked on this user is a no-op.
func (srv *userService) SignOut(ctx context.Context, input usecase.SignOutInput) error {
	user, err := srv.userRepo.FindByRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return errors.Wrap(err, "failed to find user by refresh token")
	}

	if err := srv.userRepo.RemoveRefreshToken(ctx, user.ID, input.RefreshToken); err != nil {
		return errors.Wrap(err, "failed to remove refresh token")
	}

	srv.log(ctx).Info("User signed out", slog.String("user_id", user.ID.String()))

	return nil
}

// Refresh rotates the presented refresh token and mints a fresh access token.
// The swap of old token for new happens in one transaction, so a failed
// rotation never leaves the user without a valid session.
func (srv *userService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	userID, err := srv.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.New(domainerrors.TypeForbidden, "Token expired or invalid.")
	}

	user, err := srv.userRepo.FindByRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The signature checked out but the token is no longer on the
			// user, so it was revoked or already rotated.
			return nil, domainerrors.New(domainerrors.TypeNotFound, "Refresh token not found.")
		}

		return nil, errors.Wrap(err, "failed to find user by refresh token")
	}
	if user.ID != userID {
		return nil, domainerrors.New(domainerrors.TypeForbidden, "Token expired or invalid.")
	}

	accessToken, err := srv.tokenService.IssueAccessToken(entity.Session{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	newRefreshToken, err := srv.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	expiresAt := time.Now().Add(srv.tokenService.RefreshTokenTTL())
	err = srv.userRepo.ReplaceRefreshToken(ctx, user.ID, input.RefreshToken, newRefreshToken, expiresAt)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			// Lost the race against a concurrent rotation of the same token.
			return nil, domainerrors.New(domainerrors.TypeNotFound, "Refresh token not found.")
		}

		return nil, errors.Wrap(err, "failed to replace refresh token")
	}

	srv.log(ctx).Info("Refresh token rotated", slog.String("user_id", user.ID.String()))

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetUser retrieves a user by id.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// UpdateEmail changes the account email after re-verifying the current password.
func (srv *userService) UpdateEmail(ctx context.Context, input usecase.UpdateEmailInput) (*entity.User, error) {
	user, err := srv.reauthenticate(ctx, input.UserID, input.ActualPassword)
	if err != nil {
		return nil, err
	}

	user.Email = input.NewEmail
	user.UpdatedAt = time.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.New(domainerrors.TypeValidation, "User already exists.")
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User email updated", slog.String("user_id", user.ID.String()))

	return user, nil
}

// UpdatePassword changes the account password after re-verifying the current one.
func (srv *userService) UpdatePassword(ctx context.Context, input usecase.UpdatePasswordInput) (*entity.User, error) {
	if input.NewPassword != input.RepeatNewPassword {
		return nil, domainerrors.New(domainerrors.TypeValidation, "Passwords don't match.")
	}

	user, err := srv.reauthenticate(ctx, input.UserID, input.ActualPassword)
	if err != nil {
		return nil, err
	}

	hashed, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user.Password = hashed
	user.UpdatedAt = time.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User password updated", slog.String("user_id", user.ID.String()))

	return user, nil
}

// DeleteAccount removes the account after re-verifying the password. Sessions
// and the profile go with it through the schema's cascade rules.
func (srv *userService) DeleteAccount(ctx context.Context, input usecase.DeleteAccountInput) error {
	user, err := srv.reauthenticate(ctx, input.UserID, input.ActualPassword)
	if err != nil {
		return err
	}

	if err := srv.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User account deleted", slog.String("user_id", user.ID.String()))

	return nil
}

// reauthenticate loads the user and re-checks their current password. Every
// credential-changing operation goes through here.
func (srv *userService) reauthenticate(ctx context.Context, userID uuid.UUID, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.New(domainerrors.TypeNotFound, "User not found.")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if !srv.hasher.Check(password, user.Password) {
		return nil, domainerrors.New(domainerrors.TypeValidation, "Actual password is wrong.")
	}

	return user, nil
}
