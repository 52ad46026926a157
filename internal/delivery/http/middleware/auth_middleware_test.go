package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spark/config"
	deliverycontext "spark/internal/delivery/context"
	"spark/internal/domain/entity"
	domainerrors "spark/internal/domain/errors"

	"spark/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Token.AccessTTL = time.Minute
	cfg.Token.RefreshTTL = time.Hour
	cfg.Auth.PublicRoutes = []string{"/api/user/sign-up", "/health"}

	return cfg
}

type authMiddlewareFixture struct {
	middleware *AuthMiddleware
	cfg        *config.Config
	validToken string
	userID     uuid.UUID
}

func newAuthMiddlewareFixture(t *testing.T) *authMiddlewareFixture {
	t.Helper()

	cfg := newAuthTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := tokenSvc.IssueAccessToken(entity.Session{UserID: userID, Email: "a@example.com"})
	require.NoError(t, err)

	return &authMiddlewareFixture{
		middleware: NewAuthMiddleware(tokenSvc, cfg),
		cfg:        cfg,
		validToken: token,
		userID:     userID,
	}
}

// invoke runs the middleware against a request for the given registered route
// and returns the recorder plus the error the chain produced.
func (f *authMiddlewareFixture) invoke(method, path, authHeader string) (*httptest.ResponseRecorder, bool, error) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	var reachedNext bool
	next := func(c echo.Context) error {
		reachedNext = true

		return c.NoContent(http.StatusOK)
	}

	err := f.middleware.Authenticate(next)(c)

	return rec, reachedNext, err
}

func assertAuthError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.HTTPCode())
	assert.Equal(t, message, appErr.Message())
}

func TestAuthenticate_PreflightBypassesAuth(t *testing.T) {
	fx := newAuthMiddlewareFixture(t)

	rec, reachedNext, err := fx.invoke(http.MethodOptions, "/api/user/:id", "")

	require.NoError(t, err)
	assert.False(t, reachedNext)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Preflight checked successfully.")
}

func TestAuthenticate_PublicRouteBypassesAuth(t *testing.T) {
	fx := newAuthMiddlewareFixture(t)

	_, reachedNext, err := fx.invoke(http.MethodPost, "/api/user/sign-up", "")

	require.NoError(t, err)
	assert.True(t, reachedNext)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	fx := newAuthMiddlewareFixture(t)

	_, reachedNext, err := fx.invoke(http.MethodGet, "/api/user/:id", "")

	assert.False(t, reachedNext)
	assertAuthError(t, err, http.StatusUnauthorized, "`Authorization` header is required.")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	fx := newAuthMiddlewareFixture(t)

	for _, header := range []string{"Token abc", fx.validToken, "Bearer "} {
		_, reachedNext, err := fx.invoke(http.MethodGet, "/api/user/:id", header)

		assert.False(t, reachedNext)
		assertAuthError(t, err, http.StatusUnauthorized, "Invalid access token.")
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	fx := newAuthMiddlewareFixture(t)

	_, reachedNext, err := fx.invoke(http.MethodGet, "/api/user/:id", "Bearer not-a-jwt")

	assert.False(t, reachedNext)
	assertAuthError(t, err, http.StatusForbidden, "Token expired or invalid.")
}

func TestAuthenticate_ValidTokenAttachesSession(t *testing.T) {
	fx := newAuthMiddlewareFixture(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/some-id", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+fx.validToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user/:id")

	var session *entity.Session
	err := fx.middleware.Authenticate(func(c echo.Context) error {
		session = deliverycontext.GetSession(c)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, fx.userID, session.UserID)
	assert.Equal(t, "a@example.com", session.Email)
}

func TestAuthenticate_MissingSecretFailsClosed(t *testing.T) {
	cfg := newAuthTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	// Simulate a deployment where the middleware sees an empty secret.
	misconfigured := cfg
	misconfigured.SecretKey.Access = ""
	m := NewAuthMiddleware(tokenSvc, misconfigured)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/some-id", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer whatever")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/user/:id")

	err = m.Authenticate(func(c echo.Context) error {
		return errors.New("must not reach the handler")
	})(c)

	assertAuthError(t, err, http.StatusUnauthorized, "Authorization is misconfigured.")
}
