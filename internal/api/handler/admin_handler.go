package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TinLeaves/members-portal/internal/api/metrics"
	"github.com/TinLeaves/members-portal/internal/api/middleware"
	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/ports"
)

// AdminHandler serves the admin dashboard and the role mutation routes. All
// of its routes, mutations included, sit behind RequireRole(admin).
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// Dashboard lists every user with promote/demote links.
//
// @Summary      Admin user listing
// @Tags         admin
// @Produce      html
// @Success      200  {string}  string
// @Failure      403  {string}  string
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	users, err := h.accounts.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	var rows strings.Builder
	for _, u := range users {
		name := esc(u.Username)
		rows.WriteString(fmt.Sprintf(`<li>%s (%s) — <a href="/admin/promote?user=%s">promote</a> | <a href="/admin/demote?user=%s">demote</a></li>
`, name, esc(string(u.Role)), url.QueryEscape(u.Username), url.QueryEscape(u.Username)))
	}

	return c.HTML(http.StatusOK, page("Admin", fmt.Sprintf(`
<h1>Admin</h1>
<ul>
%s</ul>
<a href="/">Home</a>`, rows.String())))
}

// Promote grants the admin role to the user named in the query string.
//
// @Summary      Promote a user to admin
// @Tags         admin
// @Param        user  query  string  true  "Target username"
// @Success      303
// @Failure      403  {string}  string
// @Failure      404  {string}  string
// @Router       /admin/promote [get]
func (h *AdminHandler) Promote(c echo.Context) error {
	return h.mutateRole(c, domain.RoleAdmin)
}

// Demote reverts the user named in the query string to the default role.
//
// @Summary      Demote an admin to user
// @Tags         admin
// @Param        user  query  string  true  "Target username"
// @Success      303
// @Failure      403  {string}  string
// @Failure      404  {string}  string
// @Router       /admin/demote [get]
func (h *AdminHandler) Demote(c echo.Context) error {
	return h.mutateRole(c, domain.RoleUser)
}

func (h *AdminHandler) mutateRole(c echo.Context, role domain.Role) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	target := c.QueryParam("user")
	if target == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user parameter")
	}

	err := h.accounts.SetRole(c.Request().Context(), *ident, target, role)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	metrics.RoleChangesTotal.WithLabelValues(string(role)).Inc()
	return c.Redirect(http.StatusSeeOther, "/admin")
}
