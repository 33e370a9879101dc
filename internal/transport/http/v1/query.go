package v1

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fieldlens/concierge/domain"
)

// QueryRequest is the request to process one business query.
type QueryRequest struct {
	Query          string              `json:"query"`
	UserID         string              `json:"user_id"`
	SessionType    string              `json:"session_type,omitempty"`
	ConversationID string              `json:"conversation_id,omitempty"`
	UserContext    *domain.UserContext `json:"user_context,omitempty"`
}

// QueryResponse is the API answer envelope.
type QueryResponse struct {
	QueryID       string             `json:"queryId"`
	Success       bool               `json:"success"`
	Response      string             `json:"response"`
	Model         string             `json:"model,omitempty"`
	ToolsUsed     []string           `json:"tools_used"`
	ExecutionTime float64            `json:"execution_time"`
	SessionType   string             `json:"session_type"`
	References    []domain.Reference `json:"references_dict"`
	Error         string             `json:"error,omitempty"`
}

// Query processes one natural-language business query.
// POST /query
func (h *Handler) Query(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	sessionType := domain.SessionType(req.SessionType)
	if req.SessionType == "" {
		sessionType = domain.SessionPersistent
	}
	if !sessionType.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_type must be persistent or temporary"})
	}

	q := domain.Query{
		Text:           req.Query,
		UserID:         req.UserID,
		SessionType:    sessionType,
		ConversationID: req.ConversationID,
		Context:        domain.DefaultUserContext(),
	}
	if req.UserContext != nil {
		q.Context = *req.UserContext
	}

	ctx := c.Request().Context()
	answer := h.orchestrator.Handle(ctx, q)

	resp := QueryResponse{
		QueryID:       "q_" + uuid.NewString(),
		Success:       answer.Success,
		Response:      answer.Response,
		Model:         answer.Model,
		ToolsUsed:     answer.ToolsUsed,
		ExecutionTime: answer.Elapsed.Seconds(),
		SessionType:   string(sessionType),
		References:    []domain.Reference{},
	}
	if resp.ToolsUsed == nil {
		resp.ToolsUsed = []string{}
	}
	if len(answer.Citations) > 0 && h.references != nil {
		resp.References = h.references.Resolve(ctx, answer.Citations)
		if resp.References == nil {
			resp.References = []domain.Reference{}
		}
	}

	status := http.StatusOK
	if !answer.Success {
		resp.Error = answer.Err
		switch answer.Failure {
		case domain.FailureGuardrail, domain.FailureCapability:
			status = http.StatusBadRequest
		default:
			status = http.StatusInternalServerError
		}
	}
	return c.JSON(status, resp)
}
