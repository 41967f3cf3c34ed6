package handlers

import (
	"ai-chat-backend/internal/auth"
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/observability"
	"ai-chat-backend/internal/services"
	"ai-chat-backend/pkg/httputil"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// AuthService defines the interface expected from the auth service.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

type AuthHandler struct {
	authService AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authSvc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authSvc,
		logger:      logger.Named("auth_handler"),
	}
}

// HandleLogin handles the POST /api/login request.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, _, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.logger.Info("login rejected", zap.String("username", req.Username))
			httputil.RespondError(w, http.StatusUnauthorized, "Invalid username or password")
		default:
			h.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
			observability.CaptureError(err)
			httputil.RespondError(w, http.StatusInternalServerError, "Login failed due to an internal error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
	})
}
