package middleware

import (
	"net/http"
	"slices"
	"strings"

	"spark/config"
	deliverycontext "spark/internal/delivery/context"
	"spark/internal/delivery/http/response"
	domainerrors "spark/internal/domain/errors"
	"spark/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind JWT access-token authentication.
type AuthMiddleware struct {
	tokenSvc     service.TokenService
	publicRoutes []string
	configured   bool
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:     tokenSvc,
		publicRoutes: cfg.Auth.PublicRoutes,
		configured:   cfg.SecretKey.Access != "",
	}
}

// Authenticate validates the bearer access token and attaches the resulting
// session to the request. CORS preflight requests and configured public
// routes pass through without a token check.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodOptions {
			return response.Message(c, http.StatusOK, "Preflight checked successfully.")
		}

		if slices.Contains(m.publicRoutes, c.Path()) {
			return next(c)
		}

		// A missing secret must never degrade into accepting forged tokens.
		if !m.configured {
			return domainerrors.New(domainerrors.TypeUnauthorized, "Authorization is misconfigured.")
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.New(domainerrors.TypeUnauthorized, "`Authorization` header is required.")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.New(domainerrors.TypeUnauthorized, "Invalid access token.")
		}

		session, err := m.tokenSvc.VerifyAccessToken(tokenString)
		if err != nil {
			return domainerrors.New(domainerrors.TypeForbidden, "Token expired or invalid.")
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}
