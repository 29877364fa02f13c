package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
)

// User handlers
func (s *Server) listUsers(c echo.Context) error {
	limit, err := helpers.QueryInt(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := helpers.QueryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	users, total, err := s.userService.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return helpers.MapServiceError(err, "failed to list users")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) createUser(c echo.Context) error {
	var req user.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	createdUser, err := s.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to create user")
	}
	s.logAdminAction(c, "create", "user", createdUser.ID)
	return c.JSON(http.StatusCreated, createdUser)
}

func (s *Server) getUser(c echo.Context) error {
	userID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	u, err := s.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return helpers.MapServiceError(err, "failed to get user")
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateUser(c echo.Context) error {
	userID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req user.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	// A superadmin cannot demote themselves.
	if currentID, _ := helpers.GetUserIDRaw(c); currentID == userID && req.Role != nil && *req.Role != user.RoleSuperAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "cannot change your own role")
	}
	u, err := s.userService.UpdateUser(c.Request().Context(), userID, &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to update user")
	}
	s.logAdminAction(c, "update", "user", userID)
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c echo.Context) error {
	userID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if currentID, _ := helpers.GetUserIDRaw(c); currentID == userID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot delete your own account")
	}
	if err := s.userService.DeleteUser(c.Request().Context(), userID); err != nil {
		return helpers.MapServiceError(err, "failed to delete user")
	}
	s.logAdminAction(c, "delete", "user", userID)
	return c.NoContent(http.StatusNoContent)
}
