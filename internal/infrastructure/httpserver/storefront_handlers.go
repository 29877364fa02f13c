package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getHome(c echo.Context) error {
	home, err := s.storefront.Home(c.Request().Context())
	if err != nil {
		return helpers.MapServiceError(err, "failed to load storefront")
	}
	return c.JSON(http.StatusOK, home)
}

// productFilterFromQuery reads the listing query parameters shared by the
// storefront and admin product listings.
func productFilterFromQuery(c echo.Context) (catalog.ProductFilter, error) {
	var f catalog.ProductFilter
	var err error
	if f.CategoryID, err = helpers.QueryUUID(c, "category_id"); err != nil {
		return f, err
	}
	if f.Featured, err = helpers.QueryBool(c, "featured"); err != nil {
		return f, err
	}
	if f.Limit, err = helpers.QueryInt(c, "limit", 0); err != nil {
		return f, err
	}
	if f.Offset, err = helpers.QueryInt(c, "offset", 0); err != nil {
		return f, err
	}
	f.Search = c.QueryParam("search")
	return f, nil
}

func (s *Server) listProducts(c echo.Context) error {
	filter, err := productFilterFromQuery(c)
	if err != nil {
		return err
	}
	page, err := s.storefront.ListProducts(c.Request().Context(), filter)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"filter": filter.CacheKey()}).WithError(err).Warn("failed to list products")
		}
		return helpers.MapServiceError(err, "failed to list products")
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := s.storefront.GetProduct(c.Request().Context(), id)
	if err != nil {
		return helpers.MapServiceError(err, "failed to get product")
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) listCategories(c echo.Context) error {
	cats, err := s.storefront.ListCategories(c.Request().Context())
	if err != nil {
		return helpers.MapServiceError(err, "failed to list categories")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": cats})
}
