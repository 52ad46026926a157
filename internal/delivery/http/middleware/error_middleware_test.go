package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "spark/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/some-id", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.HandleHTTPError(err, c)

	return rec
}

func TestHandleHTTPError_AppErrorTaxonomy(t *testing.T) {
	cases := []struct {
		kind   domainerrors.Type
		status int
	}{
		{domainerrors.TypeBadRequest, http.StatusBadRequest},
		{domainerrors.TypeValidation, http.StatusBadRequest},
		{domainerrors.TypeUnauthorized, http.StatusUnauthorized},
		{domainerrors.TypeForbidden, http.StatusForbidden},
		{domainerrors.TypeNotFound, http.StatusNotFound},
		{domainerrors.TypeConflict, http.StatusConflict},
		{domainerrors.TypeServer, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			rec := renderError(t, domainerrors.New(tc.kind, "something happened"))

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"message":"something happened"}`, rec.Body.String())
		})
	}
}

func TestHandleHTTPError_WrappedAppErrorKeepsStatus(t *testing.T) {
	appErr := domainerrors.New(domainerrors.TypeNotFound, "User not found.")
	wrapped := errors.Wrap(appErr, "sign-in failed")

	rec := renderError(t, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found."}`, rec.Body.String())
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"Method Not Allowed"}`, rec.Body.String())
}

func TestHandleHTTPError_UnknownErrorNeverLeaksInternals(t *testing.T) {
	rec := renderError(t, errors.New("pq: connection refused on 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}
