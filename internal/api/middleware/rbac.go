package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TinLeaves/members-portal/internal/api/metrics"
	"github.com/TinLeaves/members-portal/internal/core/domain"
)

// RequireRole enforces role-based access control on top of RequireAuth.
// An authenticated request with the wrong snapshotted role gets a 403, not a
// redirect: "you are logged in but not permitted" is a different answer from
// "please log in".
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := Identity(c)
			if !ok {
				metrics.AuthDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if _, ok := allowed[ident.Role]; !ok {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
