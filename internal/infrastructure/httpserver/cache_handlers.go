package httpserver

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

func (s *Server) getCacheStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.cacheAdmin.Status())
}

func (s *Server) clearCache(c echo.Context) error {
	s.cacheAdmin.Clear()
	s.logAdminAction(c, "clear", "cache", nil)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteCacheKey(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil || key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cache key")
	}
	s.cacheAdmin.Delete(key)
	s.logAdminAction(c, "delete", "cache", key)
	return c.NoContent(http.StatusNoContent)
}
