// Package response defines the JSON envelopes the API returns. Handlers never
// serialize entities directly; every user object goes through its redacted
// form first.
package response

import (
	"spark/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// MessageResponse is the bare acknowledgment envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse wraps a single redacted user.
type UserResponse struct {
	User *entity.PublicUser `json:"user"`
}

// MessageUserResponse acknowledges a mutation and returns the updated user.
type MessageUserResponse struct {
	Message string             `json:"message"`
	User    *entity.PublicUser `json:"user"`
}

// SignInResponse carries the signed-in user and the access token. The refresh
// token travels only in the cookie.
type SignInResponse struct {
	User  *entity.PublicUser `json:"user"`
	Token string             `json:"token"`
}

// TokenResponse carries a freshly minted access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Message renders a {message} body with the given status.
func Message(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Message: message})
}
