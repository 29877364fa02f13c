package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type validatable interface {
	Validate() error
}

// requestValidator delegates to the request type's own Validate method.
type requestValidator struct{}

func (v *requestValidator) Validate(i interface{}) error {
	if r, ok := i.(validatable); ok {
		if err := r.Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// bindAndValidate decodes the body into req and runs its validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}
