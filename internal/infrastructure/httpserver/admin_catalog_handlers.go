package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getDashboard(c echo.Context) error {
	d, err := s.catalog.Dashboard(c.Request().Context())
	if err != nil {
		return helpers.MapServiceError(err, "failed to load dashboard")
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) logAdminAction(c echo.Context, action, resource string, id interface{}) {
	if s.logger == nil {
		return
	}
	actor, _ := helpers.GetUserIDRaw(c)
	s.logger.WithFields(logrus.Fields{
		"actor_id":    actor,
		"action":      action,
		"resource":    resource,
		"resource_id": id,
	}).Info("admin action")
}

// Banners

func (s *Server) adminListBanners(c echo.Context) error {
	banners, err := s.catalog.ListBanners(c.Request().Context())
	if err != nil {
		return helpers.MapServiceError(err, "failed to list banners")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"banners": banners})
}

func (s *Server) adminGetBanner(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	b, err := s.catalog.GetBanner(c.Request().Context(), id)
	if err != nil {
		return helpers.MapServiceError(err, "failed to get banner")
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) adminCreateBanner(c echo.Context) error {
	var req catalog.CreateBannerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := s.catalog.CreateBanner(c.Request().Context(), &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to create banner")
	}
	s.logAdminAction(c, "create", "banner", b.ID)
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) adminUpdateBanner(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req catalog.UpdateBannerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := s.catalog.UpdateBanner(c.Request().Context(), id, &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to update banner")
	}
	s.logAdminAction(c, "update", "banner", id)
	return c.JSON(http.StatusOK, b)
}

func (s *Server) adminDeleteBanner(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteBanner(c.Request().Context(), id); err != nil {
		return helpers.MapServiceError(err, "failed to delete banner")
	}
	s.logAdminAction(c, "delete", "banner", id)
	return c.NoContent(http.StatusNoContent)
}

// Categories

func (s *Server) adminListCategories(c echo.Context) error {
	cats, err := s.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return helpers.MapServiceError(err, "failed to list categories")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": cats})
}

func (s *Server) adminGetCategory(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	cat, err := s.catalog.GetCategory(c.Request().Context(), id)
	if err != nil {
		return helpers.MapServiceError(err, "failed to get category")
	}
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) adminCreateCategory(c echo.Context) error {
	var req catalog.CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := s.catalog.CreateCategory(c.Request().Context(), &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to create category")
	}
	s.logAdminAction(c, "create", "category", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (s *Server) adminUpdateCategory(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req catalog.UpdateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := s.catalog.UpdateCategory(c.Request().Context(), id, &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to update category")
	}
	s.logAdminAction(c, "update", "category", id)
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) adminDeleteCategory(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteCategory(c.Request().Context(), id); err != nil {
		return helpers.MapServiceError(err, "failed to delete category")
	}
	s.logAdminAction(c, "delete", "category", id)
	return c.NoContent(http.StatusNoContent)
}

// Products

func (s *Server) adminListProducts(c echo.Context) error {
	filter, err := productFilterFromQuery(c)
	if err != nil {
		return err
	}
	products, err := s.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return helpers.MapServiceError(err, "failed to list products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"products": products})
}

func (s *Server) adminGetProduct(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := s.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return helpers.MapServiceError(err, "failed to get product")
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) adminCreateProduct(c echo.Context) error {
	var req catalog.CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := s.catalog.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to create product")
	}
	s.logAdminAction(c, "create", "product", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) adminUpdateProduct(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req catalog.UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := s.catalog.UpdateProduct(c.Request().Context(), id, &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to update product")
	}
	s.logAdminAction(c, "update", "product", id)
	return c.JSON(http.StatusOK, p)
}

func (s *Server) adminDeleteProduct(c echo.Context) error {
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return helpers.MapServiceError(err, "failed to delete product")
	}
	s.logAdminAction(c, "delete", "product", id)
	return c.NoContent(http.StatusNoContent)
}
