package handlers

import (
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/observability"
	"ai-chat-backend/internal/services"
	"ai-chat-backend/pkg/httputil"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MessageLedger defines the interface expected from the message service.
type MessageLedger interface {
	List(ctx context.Context, user *models.User, afterID *int) ([]models.Message, error)
	AppendUserMessage(ctx context.Context, user *models.User, text string) (models.Message, models.Message, error)
	EditMessage(ctx context.Context, user *models.User, index int, text string) error
}

// MessageHandlers handles HTTP requests on the authenticated user's conversation.
type MessageHandlers struct {
	ledger MessageLedger
	logger *zap.Logger
}

func NewMessageHandlers(ledger MessageLedger, logger *zap.Logger) *MessageHandlers {
	return &MessageHandlers{
		ledger: ledger,
		logger: logger.Named("message_handler"),
	}
}

// HandleListMessages handles GET /api/messages?current_id=<int>.
func (h *MessageHandlers) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var afterID *int
	if raw := r.URL.Query().Get("current_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusUnprocessableEntity, "current_id must be an integer")
			return
		}
		afterID = &id
	}

	messages, err := h.ledger.List(r.Context(), user, afterID)
	if err != nil {
		h.respondLedgerError(w, err, "Messages not found")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}

// HandleAddMessage handles POST /api/messages.
func (h *MessageHandlers) HandleAddMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.MessageRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if _, _, err := h.ledger.AppendUserMessage(r.Context(), user, *req.Message); err != nil {
		h.respondLedgerError(w, err, "User not found")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.StatusResponse{Msg: "Message added successfully"})
}

// HandleEditMessage handles PUT /api/messages/{index}.
func (h *MessageHandlers) HandleEditMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httputil.RespondError(w, http.StatusUnprocessableEntity, "index must be an integer")
		return
	}

	var req models.MessageRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.ledger.EditMessage(r.Context(), user, index, *req.Message); err != nil {
		h.respondLedgerError(w, err, "Message not found")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.StatusResponse{Msg: "Message updated successfully"})
}

// respondLedgerError maps ledger errors to status codes.
func (h *MessageHandlers) respondLedgerError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, services.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "Cannot edit messages sent by AI")
	default:
		h.logger.Error("ledger operation failed", zap.Error(err))
		observability.CaptureError(err)
		httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
