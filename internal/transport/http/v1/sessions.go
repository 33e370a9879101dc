package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldlens/concierge/domain"
)

func sessionKeyFromQuery(c echo.Context) (domain.SessionKey, error) {
	key := domain.SessionKey{
		UserID:         c.QueryParam("user_id"),
		Type:           domain.SessionType(c.QueryParam("session_type")),
		ConversationID: c.QueryParam("conversation_id"),
	}
	if key.Type == "" {
		key.Type = domain.SessionPersistent
	}
	return key, key.Validate()
}

// ListSessions lists sessions open in this process.
// GET /sessions
func (h *Handler) ListSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"active_sessions": h.orchestrator.Sessions().ListActive(),
	})
}

// ExportSession returns the full turn history for one session.
// GET /sessions/export
func (h *Handler) ExportSession(c echo.Context) error {
	key, err := sessionKeyFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	turns, err := h.orchestrator.Sessions().Export(key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if turns == nil {
		turns = []domain.SessionTurn{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_key": key.Encode(),
		"turns":       turns,
	})
}

// SummarizeSession reports per-role turn counts for one session.
// GET /sessions/summary
func (h *Handler) SummarizeSession(c echo.Context) error {
	key, err := sessionKeyFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	summary, err := h.orchestrator.Sessions().Summarize(key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}

// ClearSession removes all turns for one session.
// DELETE /sessions
func (h *Handler) ClearSession(c echo.Context) error {
	key, err := sessionKeyFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cleared, err := h.orchestrator.Sessions().Clear(key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_key": key.Encode(),
		"cleared":     cleared,
	})
}

// ClearUserSessions removes all turns from every session for one user.
// DELETE /sessions/user
func (h *Handler) ClearUserSessions(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	cleared, err := h.orchestrator.Sessions().ClearUser(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"cleared": cleared,
	})
}

// CleanupRequest controls the session file cleanup pass.
type CleanupRequest struct {
	OlderThanHours int `json:"older_than_hours"`
}

// CleanupSessions deletes stale persistent session files.
// POST /sessions/cleanup
func (h *Handler) CleanupSessions(c echo.Context) error {
	req := CleanupRequest{OlderThanHours: 24}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.OlderThanHours <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "older_than_hours must be positive"})
	}

	removed, err := h.orchestrator.Sessions().Cleanup(time.Duration(req.OlderThanHours) * time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"removed": removed,
	})
}
