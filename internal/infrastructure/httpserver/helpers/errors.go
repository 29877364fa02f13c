package helpers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

// MapServiceError converts a service error into an HTTP error. fallback is
// the message used for unexpected failures.
func MapServiceError(err error, fallback string) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, ports.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "resource not found")
	case errors.Is(err, ports.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, loader.ErrNotCached):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "data not available")
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "upstream timed out")
	}
	var exhausted *loader.ExhaustedRetriesError
	if errors.As(err, &exhausted) {
		return echo.NewHTTPError(http.StatusBadGateway, fallback)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}
