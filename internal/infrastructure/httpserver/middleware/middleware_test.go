package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/internal/application/services"
	"github.com/avatarctic/storefront-admin/internal/core/domain/auth"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
	tmocks "github.com/avatarctic/storefront-admin/internal/mocks"
)

func okHandler(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

func run(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, setup func(c echo.Context)) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	return rec, mw(okHandler)(c)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestRequireJWT(t *testing.T) {
	id := uuid.New()
	authSvc := &tmocks.AuthServiceMock{AuthenticateFn: func(ctx context.Context, token string) (*auth.Principal, error) {
		switch token {
		case "good":
			return &auth.Principal{UserID: id, Email: "a@b.c", Role: user.RoleSuperAdmin}, nil
		case "broken":
			return nil, errors.New("profile lookup failed")
		}
		return nil, services.ErrInvalidToken
	}}
	mw := NewJWTMiddleware(authSvc, nil).RequireJWT()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := run(t, mw, req, nil)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	_, err = run(t, mw, req, nil)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	_, err = run(t, mw, req, nil)
	assert.Equal(t, http.StatusInternalServerError, httpCode(t, err))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	var got echo.Context
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, mw(func(c echo.Context) error { got = c; return nil })(c))
	gotID, err := helpers.GetUserIDFromContext(got)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	role, _ := helpers.GetUserRoleFromContext(got)
	assert.Equal(t, user.RoleSuperAdmin, role)
}

func TestRequireRole(t *testing.T) {
	mw := NewRoleMiddleware(nil).RequireRole(user.RoleSuperAdmin)

	_, err := run(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	_, err = run(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), func(c echo.Context) {
		helpers.SetUserRole(c, user.RoleCustomer)
	})
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	rec, err := run(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), func(c echo.Context) {
		helpers.SetUserRole(c, user.RoleSuperAdmin)
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimit(t *testing.T) {
	reset := time.Unix(1700000000, 0)
	var subjects []string
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, subject string) (bool, int, int, time.Time, error) {
		subjects = append(subjects, subject)
		if len(subjects) > 1 {
			return false, 0, 1, reset, nil
		}
		return true, 0, 1, reset, nil
	}}
	mw := NewRateLimitMiddleware(limiter, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec, err := run(t, mw, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1700000000", rec.Header().Get("X-RateLimit-Reset"))

	_, err = run(t, mw, req, nil)
	assert.Equal(t, http.StatusTooManyRequests, httpCode(t, err))
	assert.Equal(t, []string{"ip:203.0.113.7", "ip:203.0.113.7"}, subjects)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, subject string) (bool, int, int, time.Time, error) {
		return false, 0, 0, time.Now(), errors.New("redis down")
	}}
	rec, err := run(t, NewRateLimitMiddleware(limiter, nil).Handler(), httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
