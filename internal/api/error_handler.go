package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/api/middleware"
	"github.com/MezeLaw/iris-ui/internal/api/render"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Forces navigation to /login on any authorization failure. The
//     upstream client's interceptor has already torn the durable session
//     down by the time the error reaches here; no explanatory message
//     distinguishes an expired session from a cross-tenant access.
//   - Renders every other error as an error page with a deterministic
//     status, logging the unexpected ones without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		page := render.Page{
			Session: middleware.CurrentSession(c),
			Data:    struct{ Code int; Message string }{code, msg},
		}
		if rerr := c.Render(code, "error.html", page); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, method mismatches, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Classified backend failures keep their taxonomy; they were already
	// logged at the interception point.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, "the clinic service is unavailable"
	}

	// Unexpected error (timeouts included): log the real cause, return a
	// generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
