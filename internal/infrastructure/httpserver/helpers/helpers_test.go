package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("product: %w", ports.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("slug taken: %w", ports.ErrConflict), http.StatusConflict},
		{"invalid", fmt.Errorf("bad category: %w", ports.ErrInvalidInput), http.StatusBadRequest},
		{"not cached", loader.ErrNotCached, http.StatusServiceUnavailable},
		{"retries", &loader.ExhaustedRetriesError{Key: "k", Attempts: 3, Err: errors.New("x")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
		{"http error passthrough", echo.NewHTTPError(http.StatusTeapot, "tea"), http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.ErrorAs(t, MapServiceError(tt.err, "failed"), &he)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestGetJWTTokenFromContext(t *testing.T) {
	e := echo.New()
	for header, ok := range map[string]bool{
		"":             false,
		"Basic abc":    false,
		"Bearer ":      false,
		"Bearer token": true,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		tok, err := GetJWTTokenFromContext(c)
		if ok {
			require.NoError(t, err)
			assert.Equal(t, "token", tok)
		} else {
			assert.Error(t, err, header)
		}
	}
}

func TestQueryHelpers(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&featured=true&category_id=nope&offset=x", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	n, err := QueryInt(c, "limit", 20)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = QueryInt(c, "missing", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	_, err = QueryInt(c, "offset", 0)
	assert.Error(t, err)

	b, err := QueryBool(c, "featured")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	_, err = QueryUUID(c, "category_id")
	assert.Error(t, err)
}
