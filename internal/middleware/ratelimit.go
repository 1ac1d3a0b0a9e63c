package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/cache"
)

// RateLimiter checks token buckets in Redis. *cache.Cache satisfies it.
type RateLimiter interface {
	CheckUserRateLimit(ctx context.Context, userID string) (*cache.RateLimitResult, error)
	CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for the rate limit middlewares.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter RateLimiter

	// Public storefront limits, per client IP.
	PublicRPS   int
	PublicBurst int
}

// UserRateLimit limits authenticated dashboard traffic per owner.
// Must run below the auth middleware. Redis failures let the request
// through; throttling is load protection, not access control.
func UserRateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.PrincipalFromContext(r.Context())
			if principal == nil {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Limiter.CheckUserRateLimit(r.Context(), principal.UserID)
			if err != nil {
				cfg.Logger.Error("rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				tooManyRequests(cfg.Logger, w, r, result.RetryAfter.Seconds(), "user", principal.UserID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IPRateLimit limits unauthenticated storefront traffic per client IP.
func IPRateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			result, err := cfg.Limiter.CheckIPRateLimit(r.Context(), ip, cfg.PublicRPS, cfg.PublicBurst)
			if err != nil {
				cfg.Logger.Error("rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				tooManyRequests(cfg.Logger, w, r, result.RetryAfter.Seconds(), "ip", ip)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware has
// already folded X-Forwarded-For into RemoteAddr when configured.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func tooManyRequests(logger *slog.Logger, w http.ResponseWriter, r *http.Request, retryAfter float64, scope, subject string) {
	logger.Warn("rate limit exceeded",
		slog.String("scope", scope),
		slog.String("subject", subject),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)

	seconds := int(retryAfter)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	writeMessage(w, http.StatusTooManyRequests, "Too many requests")
}
