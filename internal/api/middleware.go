package api

import (
	"ai-chat-backend/internal/auth"
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/observability"
	"ai-chat-backend/internal/services"
	"ai-chat-backend/pkg/httputil"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// TokenResolver turns a bearer token into the user it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// --- JWT Middleware ---

// JwtAuthMiddleware verifies the bearer token from the Authorization header.
// If valid, it injects the resolved user into the request context.
func JwtAuthMiddleware(resolver TokenResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("auth_middleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.RespondUnauthorized(w, "Not authenticated")
				return
			}

			scheme, token, _ := strings.Cut(authHeader, " ")
			if !strings.EqualFold(scheme, "bearer") {
				logger.Debug("malformed authorization header", zap.String("scheme", scheme))
				httputil.RespondUnauthorized(w, "Not authenticated")
				return
			}

			user, err := resolver.ResolveToken(r.Context(), strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, services.ErrUnauthenticated) {
					httputil.RespondUnauthorized(w, "Could not validate credentials")
					return
				}
				logger.Error("token resolution failed", zap.Error(err))
				observability.CaptureError(err)
				httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote_addr", r.RemoteAddr),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Recoverer turns a panic into a 500, logging it and reporting it to Sentry.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("recoverer")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				logger.Error("recovered from panic",
					zap.Error(err),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.Stack("stack"),
				)
				observability.CaptureError(err)
				httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
