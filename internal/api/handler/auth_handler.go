package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TinLeaves/members-portal/internal/api/metrics"
	"github.com/TinLeaves/members-portal/internal/api/middleware"
	"github.com/TinLeaves/members-portal/internal/api/token"
	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	codec       *token.Codec
}

func NewAuthHandler(authService ports.AuthService, codec *token.Codec) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec}
}

// SignupForm renders the registration form.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.HTML(http.StatusOK, page("Sign up", `
<h1>Sign up</h1>
<form action="/signup" method="POST">
  <input name="username" type="text" placeholder="username">
  <input name="email" type="email" placeholder="email">
  <input name="password" type="password" placeholder="password">
  <button type="submit">Submit</button>
</form>`))
}

// Signup registers a new account and opens an authenticated session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Alphanumeric handle, max 20 chars"
// @Param        email     formData  string  true  "Login email"
// @Param        password  formData  string  true  "Password, max 20 chars"
// @Success      303
// @Failure      400  {string}  string
// @Failure      409  {string}  string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("validation_error").Inc()
		return c.HTML(http.StatusBadRequest, tryAgainPage("Sign up failed", "Invalid form submission.", "/signup"))
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("validation_error").Inc()
		return c.HTML(http.StatusBadRequest, tryAgainPage("Sign up failed", esc(err.Error()), "/signup"))
	}

	session, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			metrics.SignupsTotal.WithLabelValues("validation_error").Inc()
			return c.HTML(http.StatusBadRequest, tryAgainPage("Sign up failed", "Invalid signup details.", "/signup"))
		case errors.Is(err, domain.ErrUserExists):
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
			return c.HTML(http.StatusConflict, tryAgainPage("Sign up failed", "Username or email already exists.", "/signup"))
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	if err := h.setSessionCookie(c, session); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/members")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.HTML(http.StatusOK, page("Log in", `
<h1>Log in</h1>
<form action="/login" method="POST">
  <input name="email" type="email" placeholder="email">
  <input name="password" type="password" placeholder="password">
  <button type="submit">Submit</button>
</form>`))
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same page, byte for byte.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true  "Login email"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401  {string}  string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("validation_error").Inc()
		return c.HTML(http.StatusBadRequest, tryAgainPage("Log in failed", "Invalid form submission.", "/login"))
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("validation_error").Inc()
		return c.HTML(http.StatusBadRequest, tryAgainPage("Log in failed", esc(err.Error()), "/login"))
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			metrics.LoginsTotal.WithLabelValues("validation_error").Inc()
			return c.HTML(http.StatusBadRequest, tryAgainPage("Log in failed", "Invalid login details.", "/login"))
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.HTML(http.StatusUnauthorized, tryAgainPage("Log in failed", "Invalid email/password combination.", "/login"))
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if err := h.setSessionCookie(c, session); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/members")
}

// Logout destroys the session and clears the cookie. Always succeeds, even
// when the session is already gone.
//
// @Summary      Logout
// @Tags         auth
// @Produce      html
// @Success      303
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if id := middleware.SessionID(c); id != "" {
		if err := h.authService.Logout(c.Request().Context(), id); err != nil {
			return err
		}
		metrics.SessionsDestroyedTotal.Inc()
	}
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, session *domain.Session) error {
	value, err := h.codec.Sign(session.ID, session.ExpiresAt)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func tryAgainPage(title, msg, backTo string) string {
	return page(title, fmt.Sprintf(`<p>%s</p>
<a href="%s">Try again</a>`, msg, backTo))
}
