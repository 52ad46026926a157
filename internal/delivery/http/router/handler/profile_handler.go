package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "spark/internal/delivery/context"
	"spark/internal/domain/entity"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createProfileRequest struct {
	Name     string   `json:"name" validate:"required,max=50"`
	Age      int      `json:"age" validate:"required,gte=18,lte=99"`
	Bio      string   `json:"bio" validate:"max=1000"`
	SexRole  string   `json:"sexRole" validate:"omitempty,oneof=active passive versatile versatile-top versatile-bottom side"`
	Genders  []string `json:"genders" validate:"omitempty,dive,oneof=male cismale transmale female cisfemale transfemale nonbinary"`
	Pronouns []string `json:"pronouns"`
}

type updateProfileRequest struct {
	Name     *string  `json:"name" validate:"omitempty,max=50"`
	Age      *int     `json:"age" validate:"omitempty,gte=18,lte=99"`
	Bio      *string  `json:"bio" validate:"omitempty,max=1000"`
	SexRole  *string  `json:"sexRole" validate:"omitempty,oneof=active passive versatile versatile-top versatile-bottom side"`
	Genders  []string `json:"genders" validate:"omitempty,dive,oneof=male cismale transmale female cisfemale transfemale nonbinary"`
	Pronouns []string `json:"pronouns"`
}

type pictureView struct {
	ID      uuid.UUID  `json:"id"`
	AlbumID *uuid.UUID `json:"albumId,omitempty"`
	URL     string     `json:"url"`
	Order   int        `json:"order"`
}

type profileView struct {
	UserID   uuid.UUID     `json:"userId"`
	Name     string        `json:"name"`
	Age      int           `json:"age"`
	Bio      string        `json:"bio"`
	SexRole  string        `json:"sexRole,omitempty"`
	Genders  []string      `json:"genders"`
	Pronouns []string      `json:"pronouns"`
	Pictures []pictureView `json:"pictures"`
}

// ProfileHandler holds dependencies for the dating-profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateProfile creates the profile for the authenticated account.
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return domainerrors.New(domainerrors.TypeUnauthorized, "`Authorization` header is required.")
	}

	input, err := bindAndValidate[createProfileRequest](c)
	if err != nil {
		return err
	}

	profile, err := h.uc.CreateProfile(c.Request().Context(), usecase.CreateProfileInput{
		UserID:   session.UserID,
		Name:     input.Name,
		Age:      input.Age,
		Bio:      input.Bio,
		SexRole:  entity.SexRole(input.SexRole),
		Genders:  toGenders(input.Genders),
		Pronouns: input.Pronouns,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toProfileView(profile))
}

// GetProfile returns the full profile of the given user.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toProfileView(profile))
}

// GetProfileSummary returns the compact card view of the given user's profile.
func (h *ProfileHandler) GetProfileSummary(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.GetProfileSummary(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, summary)
}

// UpdateProfile applies a partial update to the authenticated account's
// profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return domainerrors.New(domainerrors.TypeUnauthorized, "`Authorization` header is required.")
	}

	input, err := bindAndValidate[updateProfileRequest](c)
	if err != nil {
		return err
	}

	updateInput := usecase.UpdateProfileInput{
		UserID:   session.UserID,
		Name:     input.Name,
		Age:      input.Age,
		Bio:      input.Bio,
		Pronouns: input.Pronouns,
	}
	if input.SexRole != nil {
		sexRole := entity.SexRole(*input.SexRole)
		updateInput.SexRole = &sexRole
	}
	if input.Genders != nil {
		updateInput.Genders = toGenders(input.Genders)
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), updateInput)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toProfileView(profile))
}

func toGenders(values []string) []entity.Gender {
	if values == nil {
		return nil
	}

	genders := make([]entity.Gender, 0, len(values))
	for _, value := range values {
		genders = append(genders, entity.Gender(value))
	}

	return genders
}

func toProfileView(profile *entity.Profile) *profileView {
	view := &profileView{
		UserID:   profile.UserID,
		Name:     profile.Name,
		Age:      profile.Age,
		Bio:      profile.Bio,
		SexRole:  string(profile.SexRole),
		Genders:  make([]string, 0, len(profile.Genders)),
		Pronouns: profile.Pronouns,
		Pictures: make([]pictureView, 0, len(profile.Pictures)),
	}
	if view.Pronouns == nil {
		view.Pronouns = make([]string, 0)
	}
	for _, gender := range profile.Genders {
		view.Genders = append(view.Genders, string(gender))
	}
	for _, picture := range profile.Pictures {
		view.Pictures = append(view.Pictures, pictureView{
			ID:      picture.ID,
			AlbumID: picture.AlbumID,
			URL:     picture.URL,
			Order:   picture.Order,
		})
	}

	return view
}
