// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"spark/config"
	deliverycontext "spark/internal/delivery/context"
	"spark/internal/delivery/http/response"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// refreshCookieName is the cookie carrying the refresh token.
const refreshCookieName = "__rclientid"

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email,min=8"`
	Password string `json:"password" validate:"required,password"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email,min=8"`
	Password string `json:"password" validate:"required"`
}

type updateEmailRequest struct {
	NewEmail       string `json:"newEmail" validate:"required,email,min=8"`
	ActualPassword string `json:"actualPassword" validate:"required"`
}

type updatePasswordRequest struct {
	ActualPassword    string `json:"actualPassword" validate:"required"`
	NewPassword       string `json:"newPassword" validate:"required,password"`
	RepeatNewPassword string `json:"repeatNewPassword" validate:"required"`
}

type deleteAccountRequest struct {
	ActualPassword string `json:"actualPassword" validate:"required"`
}

// UserHandler holds dependencies for the account-lifecycle handlers.
type UserHandler struct {
	uc           usecase.UserUsecase
	logger       *slog.Logger
	refreshTTL   time.Duration
	secureCookie bool
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger, cfg *config.Config) *UserHandler {
	return &UserHandler{
		uc:           uc,
		logger:       logger,
		refreshTTL:   cfg.Token.RefreshTTL,
		secureCookie: cfg.IsProduction(),
	}
}

// SignUp handles the account creation request.
func (h *UserHandler) SignUp(c echo.Context) error {
	input, err := bindAndValidate[signUpRequest](c)
	if err != nil {
		return err
	}

	output, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, response.MessageUserResponse{
		Message: "User created successfully.",
		User:    output.User.Redact(),
	})
}

// SignIn handles the credential sign-in request. The refresh token travels
// back only in the cookie; the body carries the access token.
func (h *UserHandler) SignIn(c echo.Context) error {
	input, err := bindAndValidate[signInRequest](c)
	if err != nil {
		return err
	}

	output, err := h.uc.SignIn(c.Request().Context(), usecase.SignInInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return c.JSON(http.StatusOK, response.SignInResponse{
		User:  output.User.Redact(),
		Token: output.AccessToken,
	})
}

// SignOut revokes the session identified by the refresh cookie.
func (h *UserHandler) SignOut(c echo.Context) error {
	refreshToken, err := h.refreshTokenFromCookie(c)
	if err != nil {
		return err
	}

	if err := h.uc.SignOut(c.Request().Context(), usecase.SignOutInput{RefreshToken: refreshToken}); err != nil {
		return errors.WithStack(err)
	}

	h.clearRefreshCookie(c)

	return response.Message(c, http.StatusOK, "User signed out successfully.")
}

// RefreshToken rotates the refresh cookie and mints a new access token. The
// route is public; the cookie itself is the credential.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	refreshToken, err := h.refreshTokenFromCookie(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Refresh(c.Request().Context(), usecase.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return c.JSON(http.StatusOK, response.TokenResponse{Token: output.AccessToken})
}

// GetUser returns the redacted user for the given id.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.UserResponse{User: user.Redact()})
}

// UpdateEmail changes the email of the authenticated user's own account.
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	userID, err := h.ownAccountID(c)
	if err != nil {
		return err
	}

	input, err := bindAndValidate[updateEmailRequest](c)
	if err != nil {
		return err
	}

	user, err := h.uc.UpdateEmail(c.Request().Context(), usecase.UpdateEmailInput{
		UserID:         userID,
		NewEmail:       input.NewEmail,
		ActualPassword: input.ActualPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.MessageUserResponse{
		Message: "User email updated successfully.",
		User:    user.Redact(),
	})
}

// UpdatePassword changes the password of the authenticated user's own account.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	userID, err := h.ownAccountID(c)
	if err != nil {
		return err
	}

	input, err := bindAndValidate[updatePasswordRequest](c)
	if err != nil {
		return err
	}

	user, err := h.uc.UpdatePassword(c.Request().Context(), usecase.UpdatePasswordInput{
		UserID:            userID,
		ActualPassword:    input.ActualPassword,
		NewPassword:       input.NewPassword,
		RepeatNewPassword: input.RepeatNewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.MessageUserResponse{
		Message: "User password updated successfully.",
		User:    user.Redact(),
	})
}

// DeleteAccount removes the authenticated user's own account and ends the
// session carried by the refresh cookie.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, err := h.ownAccountID(c)
	if err != nil {
		return err
	}

	if _, err := h.refreshTokenFromCookie(c); err != nil {
		return err
	}

	input, err := bindAndValidate[deleteAccountRequest](c)
	if err != nil {
		return err
	}

	err = h.uc.DeleteAccount(c.Request().Context(), usecase.DeleteAccountInput{
		UserID:         userID,
		ActualPassword: input.ActualPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.clearRefreshCookie(c)

	return c.NoContent(http.StatusNoContent)
}

// ownAccountID parses the path id and checks it belongs to the authenticated
// session. Mutating someone else's account is forbidden regardless of the
// credentials supplied in the body.
func (h *UserHandler) ownAccountID(c echo.Context) (uuid.UUID, error) {
	userID, err := parseUserID(c)
	if err != nil {
		return uuid.Nil, err
	}

	session := deliverycontext.GetSession(c)
	if session == nil || session.UserID != userID {
		return uuid.Nil, domainerrors.New(domainerrors.TypeForbidden, "You can only modify your own account.")
	}

	return userID, nil
}

func (h *UserHandler) refreshTokenFromCookie(c echo.Context) (string, error) {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return "", domainerrors.New(domainerrors.TypeValidation, "Refresh token is required.")
	}

	return cookie.Value, nil
}

func (h *UserHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.refreshTTL),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookie,
	})
}

func (h *UserHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookie,
	})
}

// parseUserID reads the :id path parameter.
func parseUserID(c echo.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.New(domainerrors.TypeBadRequest, "Invalid user id.")
	}

	return userID, nil
}

// bindAndValidate decodes the request body and runs the registered schema
// validation before any handler logic sees the input.
func bindAndValidate[T any](c echo.Context) (*T, error) {
	input := new(T)
	if err := c.Bind(input); err != nil {
		return nil, domainerrors.New(domainerrors.TypeBadRequest, "Invalid request body.")
	}
	if err := c.Validate(input); err != nil {
		return nil, err
	}

	return input, nil
}
