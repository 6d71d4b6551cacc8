package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/security"
)

type contextKey string

const (
	operatorKey  contextKey = "operator"
	requestIDKey contextKey = "request-id"
)

// OperatorFromContext returns the username of the authenticated operator, if any.
func OperatorFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(operatorKey).(string)
	return username, ok
}

// RequestID adds a unique request ID to each request and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))
	})
}

// AuthMiddleware enforces the security level configured for the matched route.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		template := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if t, err := route.GetPathTemplate(); err == nil {
				template = t
			}
		}

		level := config.GetSecurityLevel(r.Method, template)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			writeErrorCode(w, http.StatusUnauthorized, CodeUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, security.ErrExpiredToken) {
				msg = "token has expired"
			}
			writeErrorCode(w, http.StatusUnauthorized, CodeUnauthorized, msg)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeErrorCode(w, http.StatusForbidden, CodeForbidden, "access token required")
			return
		}

		ctx := context.WithValue(r.Context(), operatorKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	// Remove Bearer prefix if present
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = header[7:]
	}
	header = strings.TrimSpace(header)
	return header, header != ""
}

// AccessLog logs one line per request at debug, and failures at warn.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id, ok := r.Context().Value(requestIDKey).(string); ok {
			args = append(args, "request_id", id)
		}
		if rec.status >= http.StatusInternalServerError {
			logger.Warn("Request completed", args...)
			return
		}
		logger.Debug("Request completed", args...)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
