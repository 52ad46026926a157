package middleware

import (
	"log/slog"
	"net/http"

	"spark/internal/delivery/http/response"
	domainerrors "spark/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware maps errors escaping the handlers onto HTTP responses. It is
// installed as Echo's central HTTPErrorHandler, so handlers and middleware
// just return errors and never build failure responses themselves.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates the error handling middleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError renders any error as a {message} body. Typed application
// errors carry their own status; everything else is a 500 with a generic
// message so internals never leak to the client.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		if writeErr := response.Message(c, appErr.HTTPCode(), appErr.Message()); writeErr != nil {
			m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
		}

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if writeErr := response.Message(c, httpErr.Code, message); writeErr != nil {
			m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
		}

		return
	}

	m.logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	if writeErr := response.Message(c, http.StatusInternalServerError, "Internal Server Error"); writeErr != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
	}
}
