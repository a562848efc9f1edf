package controllers

import (
	"net/http"
	"strings"

	"github.com/gelaboca/gelaboca-backend/api/middleware"
	"github.com/gelaboca/gelaboca-backend/api/responses"
	"github.com/gelaboca/gelaboca-backend/api/validators"
	chatsvc "github.com/gelaboca/gelaboca-backend/internal/chat"
	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
)

type chatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

// chatResponse keeps the tablet frontend's wire contract: a flat object, not
// the envelope the rest of the API uses.
type chatResponse struct {
	Message     string               `json:"message"`
	Success     bool                 `json:"success"`
	SessionID   string               `json:"sessionId"`
	ProductInfo *chatsvc.ProductInfo `json:"productInfo,omitempty"`
}

// ChatMessage handles one assistant exchange for a table session.
func ChatMessage(svc *chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		var payload chatRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if strings.TrimSpace(payload.Message) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "message must not be blank"))
			return
		}

		sessionID := strings.TrimSpace(payload.SessionID)
		if sessionID == "" {
			sessionID = middleware.SessionIDFromContext(r.Context())
		}

		reply := svc.Respond(r.Context(), sessionID, payload.Message)

		writeFlatJSON(w, http.StatusOK, chatResponse{
			Message:     reply.Message,
			Success:     true,
			SessionID:   sessionID,
			ProductInfo: reply.Product,
		})
	}
}

// ChatClearHistory forgets a session's conversation.
func ChatClearHistory(svc *chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))
		if sessionID == "" {
			sessionID = middleware.SessionIDFromContext(r.Context())
		}

		if err := svc.ClearHistory(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing history"))
			return
		}

		writeFlatJSON(w, http.StatusOK, map[string]any{
			"message": "Histórico limpo com sucesso!",
			"success": true,
		})
	}
}
