package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/core/domain"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
	"github.com/MezeLaw/iris-ui/internal/upstream"
)

const (
	sessionContextKey = "session"
	sidContextKey     = "sid"
)

// SessionConfig configures the session-loading middleware.
type SessionConfig struct {
	// CookieName is the session-ID cookie. Defaults to "iris_sid".
	CookieName string
	Store      ports.SessionStore
	// OnFirstSeen runs at most once per session ID per process start,
	// and only when that session already holds a stored token. It is
	// fired on a detached context and never awaited; the controller uses
	// it for the one startup token-validation call.
	OnFirstSeen func(ctx context.Context, sid string)
	Log         zerolog.Logger
}

// Session resolves the visitor's session on every request: it reads or
// mints the session-ID cookie, loads the fresh session state from the
// store, and binds both to the request for guards, handlers and the
// upstream client.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "iris_sid"
	}

	var seen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := upstream.WithSessionID(c.Request().Context(), sid)
			c.SetRequest(c.Request().WithContext(ctx))

			sess, err := cfg.Store.Get(ctx, sid)
			if err != nil {
				// A store outage degrades to an anonymous session; the
				// guards then bounce to login rather than erroring.
				cfg.Log.Error().Err(err).Msg("session load failed")
				sess = domain.Session{}
			}
			c.Set(sessionContextKey, sess)
			c.Set(sidContextKey, sid)

			if cfg.OnFirstSeen != nil && sess.Token != "" {
				if _, loaded := seen.LoadOrStore(sid, struct{}{}); !loaded {
					go cfg.OnFirstSeen(context.WithoutCancel(ctx), sid)
				}
			}

			return next(c)
		}
	}
}

// CurrentSession returns the session attached by the Session middleware.
// Routes registered without it see an empty, unauthenticated session.
func CurrentSession(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionContextKey).(domain.Session)
	return sess
}

// CurrentSID returns the visitor's session ID.
func CurrentSID(c echo.Context) string {
	sid, _ := c.Get(sidContextKey).(string)
	return sid
}
