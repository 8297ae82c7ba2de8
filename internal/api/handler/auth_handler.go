package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/api/metrics"
	"github.com/MezeLaw/iris-ui/internal/api/middleware"
	"github.com/MezeLaw/iris-ui/internal/api/render"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
)

const validateTimeout = 10 * time.Second

// AuthHandler orchestrates the auth gateway, the session store and
// navigation on behalf of the views.
type AuthHandler struct {
	auth  ports.AuthGateway
	store ports.SessionStore
	log   zerolog.Logger
}

func NewAuthHandler(auth ports.AuthGateway, store ports.SessionStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, log: log}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name       string `form:"name" validate:"required"`
	Lastname   string `form:"lastname" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required,min=6"`
	Role       string `form:"role" validate:"required,clinicrole"`
	ClientName string `form:"client_name"`
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", render.Page{Session: middleware.CurrentSession(c)})
}

// Login exchanges the form credentials for a session. On success the
// session store is populated and the browser navigates home; on rejection
// the form re-renders with a banner and the session stays untouched.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", render.Page{Banner: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		// Field-level failure: rendered inline, never reaches the network.
		return c.Render(http.StatusBadRequest, "login.html", render.Page{Fields: fieldErrors(err), Data: form})
	}

	res, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(attemptResult(err)).Inc()
		return c.Render(rejectionStatus(err), "login.html", render.Page{Banner: rejectionBanner(err), Data: form})
	}

	if err := h.store.SetAuth(c.Request().Context(), middleware.CurrentSID(c), res.User, res.Client, res.Token); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", render.Page{Session: middleware.CurrentSession(c)})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", render.Page{Banner: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", render.Page{Fields: fieldErrors(err), Data: form})
	}

	res, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:       form.Name,
		Lastname:   form.Lastname,
		Email:      form.Email,
		Password:   form.Password,
		Role:       form.Role,
		ClientName: form.ClientName,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(attemptResult(err)).Inc()
		return c.Render(rejectionStatus(err), "register.html", render.Page{Banner: rejectionBanner(err), Data: form})
	}

	if err := h.store.SetAuth(c.Request().Context(), middleware.CurrentSID(c), res.User, res.Client, res.Token); err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session and navigates to login. Safe to call for an
// already-empty session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.CurrentSID(c)); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ValidateStoredToken is the once-per-session startup check, fired by the
// session middleware the first time a stored token is seen after process
// start. A failure is logged and never retried, and does not by itself
// clear the session; teardown belongs exclusively to the upstream client's
// 401 interception.
func (h *AuthHandler) ValidateStoredToken(ctx context.Context, sid string) {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	if _, err := h.auth.ValidateToken(ctx); err != nil {
		h.log.Warn().Err(err).Str("sid", sid).Msg("stored token validation failed")
		return
	}
	h.log.Debug().Str("sid", sid).Msg("stored token validated")
}

func attemptResult(err error) string {
	if errors.Is(err, domain.ErrUnauthorized) {
		return "rejected"
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return "rejected"
	}
	return "error"
}

func rejectionStatus(err error) int {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func rejectionBanner(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "the clinic service did not respond, try again"
}
