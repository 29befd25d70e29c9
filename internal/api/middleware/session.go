package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TinLeaves/members-portal/internal/api/metrics"
	"github.com/TinLeaves/members-portal/internal/api/token"
	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/ports"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "members_session"

const (
	ctxSessionID = "session_id"
	ctxIdentity  = "identity"
)

// Session resolves the signed session cookie to an identity snapshot and
// injects both into the request context. It never rejects: anonymous and
// invalid-cookie requests pass through unmarked for the gates downstream.
func Session(codec *token.Codec, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sessionID, err := codec.Parse(cookie.Value)
			if err != nil {
				// tampered or expired cookie: treat as anonymous
				return next(c)
			}
			c.Set(ctxSessionID, sessionID)

			ident, authenticated, err := auth.CheckSession(c.Request().Context(), sessionID)
			if err != nil {
				return err
			}
			if authenticated {
				c.Set(ctxIdentity, ident)
			}
			return next(c)
		}
	}
}

// RequireAuth redirects anonymous requests to the login page. Expired and
// destroyed sessions land here too: they are indistinguishable from having
// no session at all.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := Identity(c); !ok {
				metrics.AuthDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// SessionID returns the session ID injected by Session, if any.
func SessionID(c echo.Context) string {
	id, _ := c.Get(ctxSessionID).(string)
	return id
}

// Identity returns the authenticated identity snapshot, if any.
func Identity(c echo.Context) (*domain.Identity, bool) {
	ident, ok := c.Get(ctxIdentity).(*domain.Identity)
	return ident, ok && ident != nil
}
