package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type dependencyStatus struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Health check handler. Dependencies are probed concurrently.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		deps = make(map[string]dependencyStatus)
	)
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		hc := hc
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			st := dependencyStatus{Status: "healthy"}
			if err := hc.Check(ctx); err != nil {
				st.Status = "unhealthy"
				st.Error = err.Error()
			}
			st.LatencyMS = time.Since(start).Milliseconds()
			mu.Lock()
			deps[hc.Name()] = st
			mu.Unlock()
		}()
	}
	wg.Wait()

	overall := "healthy"
	for name, st := range deps {
		if st.Status != "healthy" {
			overall = "degraded"
			if s.logger != nil {
				s.logger.WithField("dependency", name).Warn("health check failed: " + st.Error)
			}
		}
	}
	health := map[string]interface{}{
		"status":       overall,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"service":      "storefront-admin",
		"dependencies": deps,
	}
	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}
