package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

type stubAccountService struct {
	listFn    func(ctx context.Context) ([]domain.UserSummary, error)
	setRoleFn func(ctx context.Context, acting domain.Identity, username string, role domain.Role) error
}

func (s *stubAccountService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) SetRole(ctx context.Context, acting domain.Identity, username string, role domain.Role) error {
	return s.setRoleFn(ctx, acting, username, role)
}

func (s *stubAccountService) Promote(ctx context.Context, acting domain.Identity, username string) error {
	return s.setRoleFn(ctx, acting, username, domain.RoleAdmin)
}

func (s *stubAccountService) Demote(ctx context.Context, acting domain.Identity, username string) error {
	return s.setRoleFn(ctx, acting, username, domain.RoleUser)
}

func adminContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	path := "/admin"
	if target != "" {
		path += "?user=" + target
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.Identity{Username: "root", Email: "root@example.com", Role: domain.RoleAdmin})
	return c, rec
}

func TestAdminHandler_Dashboard(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(context.Context) ([]domain.UserSummary, error) {
			return []domain.UserSummary{
				{Username: "alice", Role: domain.RoleUser},
				{Username: "root", Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := adminContext(t, "")
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alice") || !strings.Contains(body, "promote") {
		t.Fatalf("listing incomplete: %s", body)
	}
}

func TestAdminHandler_Dashboard_EscapesUsernames(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(context.Context) ([]domain.UserSummary, error) {
			return []domain.UserSummary{{Username: "<script>", Role: domain.RoleUser}}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := adminContext(t, "")
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Fatalf("username not escaped in listing")
	}
}

func TestAdminHandler_Promote(t *testing.T) {
	var gotTarget string
	var gotRole domain.Role
	stub := &stubAccountService{
		setRoleFn: func(_ context.Context, acting domain.Identity, username string, role domain.Role) error {
			if acting.Role != domain.RoleAdmin {
				t.Fatalf("expected admin acting identity, got %s", acting.Role)
			}
			gotTarget, gotRole = username, role
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := adminContext(t, "alice")
	if err := h.Promote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotTarget != "alice" || gotRole != domain.RoleAdmin {
		t.Fatalf("unexpected mutation: %s → %s", gotTarget, gotRole)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", loc)
	}
}

func TestAdminHandler_Demote(t *testing.T) {
	var gotRole domain.Role
	stub := &stubAccountService{
		setRoleFn: func(_ context.Context, _ domain.Identity, _ string, role domain.Role) error {
			gotRole = role
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, _ := adminContext(t, "alice")
	if err := h.Demote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotRole != domain.RoleUser {
		t.Fatalf("expected demotion to user, got %s", gotRole)
	}
}

func TestAdminHandler_Promote_UserNotFound(t *testing.T) {
	stub := &stubAccountService{
		setRoleFn: func(context.Context, domain.Identity, string, domain.Role) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewAdminHandler(stub)

	c, _ := adminContext(t, "ghost")
	err := h.Promote(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestAdminHandler_Promote_MissingTarget(t *testing.T) {
	stub := &stubAccountService{
		setRoleFn: func(context.Context, domain.Identity, string, domain.Role) error {
			t.Fatalf("service must not be called without a target")
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, _ := adminContext(t, "")
	err := h.Promote(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
