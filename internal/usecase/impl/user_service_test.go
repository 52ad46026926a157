package impl

import (
	"context"
	"testing"

	"spark/internal/domain/entity"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, kind domainerrors.Type, message string) {
	t.Helper()

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Type())
	assert.Equal(t, message, appErr.Message())
}

// seedUser signs up a user through the service so the stored state matches
// what production writes would produce.
func seedUser(t *testing.T, fx *userServiceFixture, email, password string) *entity.User {
	t.Helper()

	out, err := fx.service.SignUp(context.Background(), usecase.SignUpInput{Email: email, Password: password})
	require.NoError(t, err)

	return out.User
}

func TestUserService_SignUp(t *testing.T) {
	fx := newUserServiceFixture()

	out, err := fx.service.SignUp(context.Background(), usecase.SignUpInput{
		Email:    "ignis@example.com",
		Password: "Ign!is*123",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.User.ID)
	assert.Equal(t, "ignis@example.com", out.User.Email)
	assert.Equal(t, "hashed:Ign!is*123", out.User.Password)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.True(t, out.User.IsActive)
}

func TestUserService_SignUp_DuplicateEmail(t *testing.T) {
	fx := newUserServiceFixture()
	seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	_, err := fx.service.SignUp(context.Background(), usecase.SignUpInput{
		Email:    "ignis@example.com",
		Password: "Other!pw1",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "User already exists.")
}

func TestUserService_SignIn(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	out, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ignis@example.com",
		Password: "Ign!is*123",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)
	assert.True(t, fx.userRepo.hasToken(out.RefreshToken), "refresh token must be persisted before it is handed out")
}

func TestUserService_SignIn_UnknownEmail(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ghost@example.com",
		Password: "Ign!is*123",
	})

	assertAppError(t, err, domainerrors.TypeNotFound, "User not found.")
}

func TestUserService_SignIn_WrongPassword(t *testing.T) {
	fx := newUserServiceFixture()
	seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	_, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ignis@example.com",
		Password: "Wrong!pw1",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "Password is wrong.")
}

func TestUserService_SignOut(t *testing.T) {
	fx := newUserServiceFixture()
	seedUser(t, fx, "ignis@example.com", "Ign!is*123")
	signedIn, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ignis@example.com",
		Password: "Ign!is*123",
	})
	require.NoError(t, err)

	err = fx.service.SignOut(context.Background(), usecase.SignOutInput{RefreshToken: signedIn.RefreshToken})

	require.NoError(t, err)
	assert.False(t, fx.userRepo.hasToken(signedIn.RefreshToken))
}

func TestUserService_SignOut_UnknownToken(t *testing.T) {
	fx := newUserServiceFixture()

	err := fx.service.SignOut(context.Background(), usecase.SignOutInput{RefreshToken: "never-issued"})

	assertAppError(t, err, domainerrors.TypeNotFound, "User not found.")
}

func TestUserService_Refresh_RotatesExactlyOnce(t *testing.T) {
	fx := newUserServiceFixture()
	seedUser(t, fx, "ignis@example.com", "Ign!is*123")
	signedIn, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ignis@example.com",
		Password: "Ign!is*123",
	})
	require.NoError(t, err)

	out, err := fx.service.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: signedIn.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEqual(t, signedIn.RefreshToken, out.RefreshToken)
	assert.False(t, fx.userRepo.hasToken(signedIn.RefreshToken), "rotated token must be revoked")
	assert.True(t, fx.userRepo.hasToken(out.RefreshToken))

	// Replaying the rotated token must fail and must not revoke anything else.
	_, err = fx.service.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: signedIn.RefreshToken})
	assertAppError(t, err, domainerrors.TypeNotFound, "Refresh token not found.")
	assert.True(t, fx.userRepo.hasToken(out.RefreshToken))
}

func TestUserService_Refresh_UnknownToken(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.service.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: "never-issued"})

	assertAppError(t, err, domainerrors.TypeForbidden, "Token expired or invalid.")
}

func TestUserService_Refresh_FailedRotationKeepsOldToken(t *testing.T) {
	fx := newUserServiceFixture()
	seedUser(t, fx, "ignis@example.com", "Ign!is*123")
	signedIn, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ignis@example.com",
		Password: "Ign!is*123",
	})
	require.NoError(t, err)

	fx.userRepo.failReplace = errors.New("connection reset")

	_, err = fx.service.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: signedIn.RefreshToken})

	require.Error(t, err)
	assert.True(t, fx.userRepo.hasToken(signedIn.RefreshToken), "a failed rotation must leave the presented token valid")
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := newUserServiceFixture()

	_, err := fx.service.GetUser(context.Background(), uuid.New())

	assertAppError(t, err, domainerrors.TypeNotFound, "User not found.")
}

func TestUserService_UpdateEmail(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	updated, err := fx.service.UpdateEmail(context.Background(), usecase.UpdateEmailInput{
		UserID:         user.ID,
		NewEmail:       "new@example.com",
		ActualPassword: "Ign!is*123",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)

	stored, err := fx.userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Email)
}

func TestUserService_UpdateEmail_WrongPassword(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	_, err := fx.service.UpdateEmail(context.Background(), usecase.UpdateEmailInput{
		UserID:         user.ID,
		NewEmail:       "new@example.com",
		ActualPassword: "Wrong!pw1",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "Actual password is wrong.")
}

func TestUserService_UpdateEmail_TakenEmail(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")
	seedUser(t, fx, "taken@example.com", "Tak!en*123")

	_, err := fx.service.UpdateEmail(context.Background(), usecase.UpdateEmailInput{
		UserID:         user.ID,
		NewEmail:       "taken@example.com",
		ActualPassword: "Ign!is*123",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "User already exists.")
}

func TestUserService_UpdatePassword(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	_, err := fx.service.UpdatePassword(context.Background(), usecase.UpdatePasswordInput{
		UserID:            user.ID,
		ActualPassword:    "Ign!is*123",
		NewPassword:       "Fresh!pw1",
		RepeatNewPassword: "Fresh!pw1",
	})
	require.NoError(t, err)

	// The old password must stop working and the new one must sign in.
	_, err = fx.service.SignIn(context.Background(), usecase.SignInInput{Email: "ignis@example.com", Password: "Ign!is*123"})
	assertAppError(t, err, domainerrors.TypeValidation, "Password is wrong.")

	_, err = fx.service.SignIn(context.Background(), usecase.SignInInput{Email: "ignis@example.com", Password: "Fresh!pw1"})
	assert.NoError(t, err)
}

func TestUserService_UpdatePassword_Mismatch(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	_, err := fx.service.UpdatePassword(context.Background(), usecase.UpdatePasswordInput{
		UserID:            user.ID,
		ActualPassword:    "Ign!is*123",
		NewPassword:       "Fresh!pw1",
		RepeatNewPassword: "Other!pw1",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "Passwords don't match.")
}

func TestUserService_UpdatePassword_WrongActualPassword(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	_, err := fx.service.UpdatePassword(context.Background(), usecase.UpdatePasswordInput{
		UserID:            user.ID,
		ActualPassword:    "Wrong!pw1",
		NewPassword:       "Fresh!pw1",
		RepeatNewPassword: "Fresh!pw1",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "Actual password is wrong.")
}

func TestUserService_DeleteAccount(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")
	signedIn, err := fx.service.SignIn(context.Background(), usecase.SignInInput{
		Email:    "ignis@example.com",
		Password: "Ign!is*123",
	})
	require.NoError(t, err)

	err = fx.service.DeleteAccount(context.Background(), usecase.DeleteAccountInput{
		UserID:         user.ID,
		ActualPassword: "Ign!is*123",
	})

	require.NoError(t, err)
	_, err = fx.service.GetUser(context.Background(), user.ID)
	assertAppError(t, err, domainerrors.TypeNotFound, "User not found.")
	assert.False(t, fx.userRepo.hasToken(signedIn.RefreshToken), "deleting the account must revoke its sessions")
}

func TestUserService_DeleteAccount_WrongPassword(t *testing.T) {
	fx := newUserServiceFixture()
	user := seedUser(t, fx, "ignis@example.com", "Ign!is*123")

	err := fx.service.DeleteAccount(context.Background(), usecase.DeleteAccountInput{
		UserID:         user.ID,
		ActualPassword: "Wrong!pw1",
	})

	assertAppError(t, err, domainerrors.TypeValidation, "Actual password is wrong.")
}
