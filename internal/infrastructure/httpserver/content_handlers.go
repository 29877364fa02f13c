package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront-admin/internal/core/domain/content"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/helpers"
)

func (s *Server) scrapeContent(c echo.Context) error {
	var req content.ScrapeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := s.content.Scrape(c.Request().Context(), &req)
	if err != nil {
		if s.logger != nil {
			s.logger.WithField("url", req.URL).WithError(err).Warn("scrape failed")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to scrape page")
	}
	return c.JSON(http.StatusOK, res)
}

// generateContent always answers 200; provider failures come back as fallback copy.
func (s *Server) generateContent(c echo.Context) error {
	var req content.GenerateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := s.content.Generate(c.Request().Context(), &req)
	if err != nil {
		return helpers.MapServiceError(err, "failed to generate content")
	}
	return c.JSON(http.StatusOK, out)
}
