package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testCfg = JWTConfig{Secret: []byte("test-secret"), Issuer: "praxis-test"}

func doRequest(t *testing.T, token string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	tenant := uuid.New()
	token, err := Sign(testCfg, "user-1", tenant, RolePsychologist, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, c := doRequest(t, token)
	var gotTenant uuid.UUID
	var gotUser, gotRole string
	h := JWTMiddleware(testCfg)(func(c echo.Context) error {
		ctx := c.Request().Context()
		gotTenant = TenantFromContext(ctx)
		gotUser = UserIDFromContext(ctx)
		gotRole = RoleFromContext(ctx)
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if gotTenant != tenant {
		t.Errorf("tenant = %s, want %s", gotTenant, tenant)
	}
	if gotUser != "user-1" {
		t.Errorf("user = %q, want user-1", gotUser)
	}
	if gotRole != RolePsychologist {
		t.Errorf("role = %q, want %q", gotRole, RolePsychologist)
	}
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	_, c := doRequest(t, "")
	h := JWTMiddleware(testCfg)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 HTTPError, got %v", err)
	}
}

func TestJWTMiddlewareWrongSecret(t *testing.T) {
	token, err := Sign(JWTConfig{Secret: []byte("other-secret"), Issuer: "praxis-test"}, "user-1", uuid.New(), RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, c := doRequest(t, token)
	h := JWTMiddleware(testCfg)(func(c echo.Context) error { return nil })

	err = h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 HTTPError, got %v", err)
	}
}

func TestJWTMiddlewareExpiredToken(t *testing.T) {
	token, err := Sign(testCfg, "user-1", uuid.New(), RoleAdmin, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, c := doRequest(t, token)
	h := JWTMiddleware(testCfg)(func(c echo.Context) error { return nil })

	err = h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 HTTPError, got %v", err)
	}
}

func TestTenantFromContextZeroWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TenantFromContext(req.Context()); got != uuid.Nil {
		t.Errorf("tenant = %s, want zero UUID", got)
	}
}
