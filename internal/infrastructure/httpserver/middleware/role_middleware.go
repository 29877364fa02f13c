package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
)

type RoleMiddleware struct {
	logger *logrus.Logger
}

func NewRoleMiddleware(logger *logrus.Logger) *RoleMiddleware {
	return &RoleMiddleware{logger: logger}
}

// RequireRole rejects callers whose role is not in roles. It must run after RequireJWT.
func (m *RoleMiddleware) RequireRole(roles ...user.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := helpers.GetUserRoleFromContext(c)
			if err != nil {
				return err
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			if m.logger != nil {
				userID, _ := helpers.GetUserIDRaw(c)
				m.logger.WithFields(logrus.Fields{"user_id": userID, "role": role, "path": c.Path()}).Warn("access denied: insufficient role")
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}
