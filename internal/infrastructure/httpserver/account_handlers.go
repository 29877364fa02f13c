package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
)

// getOwnProfile returns the caller's profile.
func (s *Server) getOwnProfile(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	u, err := s.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return helpers.MapServiceError(err, "failed to get profile")
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateOwnProfile(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	var req user.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := s.userService.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to update profile")
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) listWishlist(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	products, err := s.wishlist.List(c.Request().Context(), userID)
	if err != nil {
		return helpers.MapServiceError(err, "failed to load wishlist")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"products": products})
}

func (s *Server) addToWishlist(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	productID, err := helpers.ParseUUIDParam(c, "product_id")
	if err != nil {
		return err
	}
	if err := s.wishlist.Add(c.Request().Context(), userID, productID); err != nil {
		return helpers.MapServiceError(err, "failed to add to wishlist")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) removeFromWishlist(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	productID, err := helpers.ParseUUIDParam(c, "product_id")
	if err != nil {
		return err
	}
	if err := s.wishlist.Remove(c.Request().Context(), userID, productID); err != nil {
		return helpers.MapServiceError(err, "failed to remove from wishlist")
	}
	return c.NoContent(http.StatusNoContent)
}
