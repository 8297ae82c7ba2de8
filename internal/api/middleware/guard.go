package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MezeLaw/iris-ui/internal/api/metrics"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
)

// Decision is a guard verdict: either render the wrapped routes, or
// navigate to Location instead.
type Decision struct {
	Allow    bool
	Location string
}

// Allow renders the wrapped routes.
func Allow() Decision { return Decision{Allow: true} }

// Deny redirects to location instead of rendering.
func Deny(location string) Decision { return Decision{Location: location} }

// Authenticated admits only sessions holding an accepted token; everyone
// else is sent to the login view.
func Authenticated(sess domain.Session) Decision {
	if !sess.IsAuthenticated {
		return Deny("/login")
	}
	return Allow()
}

// AdminOnly admits only the admin role; other roles are sent home.
func AdminOnly(sess domain.Session) Decision {
	if sess.Role() != domain.RoleAdmin {
		return Deny("/")
	}
	return Allow()
}

// Guard executes a pure guard predicate against the current session on
// every request. Decisions are never cached; state changes (login, logout,
// a 401 teardown) take effect on the next navigation.
func Guard(name string, predicate func(domain.Session) Decision) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d := predicate(CurrentSession(c)); !d.Allow {
				metrics.GuardDenialsTotal.WithLabelValues(name).Inc()
				return c.Redirect(http.StatusSeeOther, d.Location)
			}
			return next(c)
		}
	}
}
