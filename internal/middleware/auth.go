package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/model"
)

// SessionCookieName is the cookie the dashboard uses to carry the session
// token. The Authorization header takes precedence when both are present.
const SessionCookieName = "tavolo_session"

// SessionGetter looks up a login session by its opaque token.
// *cache.Cache satisfies it.
type SessionGetter interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Sessions SessionGetter
}

// Auth returns a middleware that authenticates dashboard requests.
// It extracts the session token from the Authorization header or the
// session cookie, resolves the session in Redis, and injects the
// principal into the request context. All failures produce the same
// 401 body to prevent token probing.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r)
			if token == "" {
				authFailure(cfg.Logger, w, r, "missing_token")
				return
			}

			if err := auth.ValidateTokenFormat(token); err != nil {
				authFailure(cfg.Logger, w, r, "invalid_format")
				return
			}

			sess, err := cfg.Sessions.GetSession(r.Context(), token)
			if err != nil {
				cfg.Logger.Error("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if sess == nil {
				authFailure(cfg.Logger, w, r, "unknown_token")
				return
			}
			if time.Now().After(sess.ExpiresAt) {
				authFailure(cfg.Logger, w, r, "expired_session")
				return
			}

			principal := &model.Principal{
				UserID: sess.UserID,
				Email:  sess.Email,
			}

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSessionToken pulls the session token from the request.
// Supports "Authorization: Bearer <token>" and the session cookie.
func extractSessionToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func authFailure(logger *slog.Logger, w http.ResponseWriter, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
	writeMessage(w, http.StatusUnauthorized, "Unauthorized")
}

// writeMessage writes the API's uniform JSON error envelope.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := json.Marshal(map[string]string{"message": message})
	_, _ = fmt.Fprintln(w, string(body))
}
