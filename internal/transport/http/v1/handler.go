// Package v1 provides the HTTP handlers for the assistant API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldlens/concierge/internal/knowledge"
	"github.com/fieldlens/concierge/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	orchestrator *service.Orchestrator
	references   *knowledge.Resolver
}

// NewHandler creates a new handler.
func NewHandler(orchestrator *service.Orchestrator, references *knowledge.Resolver) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		references:   references,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/query", h.Query)

	e.GET("/sessions", h.ListSessions)
	e.GET("/sessions/export", h.ExportSession)
	e.GET("/sessions/summary", h.SummarizeSession)
	e.DELETE("/sessions", h.ClearSession)
	e.DELETE("/sessions/user", h.ClearUserSessions)
	e.POST("/sessions/cleanup", h.CleanupSessions)

	e.GET("/health", h.Health)
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	metrics := h.orchestrator.Metrics()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"orchestrator": map[string]interface{}{
			"uptime_seconds":  h.orchestrator.Uptime().Seconds(),
			"model":           h.orchestrator.Model(),
			"guardrail":       true,
			"capabilities":    len(h.orchestrator.Capabilities()),
			"queries_total":   metrics.Queries,
			"queries_blocked": metrics.Blocked,
			"queries_failed":  metrics.Failures,
		},
		"sessions": map[string]interface{}{
			"active":  len(h.orchestrator.Sessions().ListActive()),
			"storage": h.orchestrator.Sessions().StorageDir(),
		},
	})
}
