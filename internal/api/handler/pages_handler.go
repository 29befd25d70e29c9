package handler

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TinLeaves/members-portal/internal/api/middleware"
)

// memberImages are served from /public and one is picked at random per visit.
var memberImages = []string{"atSad.gif", "atVibe.gif", "atSoupMe.gif"}

// PagesHandler renders the public landing page and the members area.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home shows login/signup links to visitors and a greeting to members.
func (h *PagesHandler) Home(c echo.Context) error {
	if ident, ok := middleware.Identity(c); ok {
		return c.HTML(http.StatusOK, page("Home", fmt.Sprintf(`
<h1>Hello, %s.</h1>
<a href="/members">Go to Members Area</a><br>
<a href="/logout">Sign out</a>`, esc(ident.Username))))
	}
	return c.HTML(http.StatusOK, page("Home", `
<h1>Welcome</h1>
<a href="/signup">Sign up</a><br>
<a href="/login">Log in</a>`))
}

// Members greets the logged-in user with a random image. The route sits
// behind RequireAuth.
func (h *PagesHandler) Members(c echo.Context) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	img := memberImages[rand.Intn(len(memberImages))]
	return c.HTML(http.StatusOK, page("Members", fmt.Sprintf(`
<h1>Hello, %s.</h1>
<img src="/public/%s">
<form action="/logout" method="GET">
  <button type="submit">Sign out</button>
</form>`, esc(ident.Username), img)))
}
