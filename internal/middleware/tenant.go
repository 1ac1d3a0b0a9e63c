package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

// TenantHeader selects which owned restaurant a request operates on.
// Absent, the owner's oldest restaurant is used.
const TenantHeader = "X-Restaurant-ID"

// tenantNotFoundMessage is the single 404 body for every tenant
// resolution failure: no account, no restaurants, or a header naming a
// restaurant the caller does not own.
const tenantNotFoundMessage = "User or Restaurant not found"

// TenantSource loads an owner and their restaurants for tenant
// resolution. *repository.Repository satisfies it.
type TenantSource interface {
	GetUserWithRestaurants(ctx context.Context, email string) (*model.User, []*model.Restaurant, error)
}

// TenantConfig holds configuration for the tenant middleware.
type TenantConfig struct {
	Logger *slog.Logger
	Source TenantSource
}

// Tenant returns a middleware that resolves the active restaurant for
// an authenticated request and injects it into the context. Resolution
// runs fresh on every request; ownership is never cached, so revoked
// access takes effect immediately.
func Tenant(cfg TenantConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.PrincipalFromContext(r.Context())
			if principal == nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			_, restaurants, err := cfg.Source.GetUserWithRestaurants(r.Context(), principal.Email)
			if errors.Is(err, repository.ErrUserNotFound) {
				// A session outliving its user row resolves like any
				// other missing tenant.
				cfg.Logger.Warn("tenant resolution failed",
					slog.String("user_id", principal.UserID),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeMessage(w, http.StatusNotFound, tenantNotFoundMessage)
				return
			}
			if err != nil {
				cfg.Logger.Error("tenant lookup failed",
					slog.String("user_id", principal.UserID),
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if len(restaurants) == 0 {
				writeMessage(w, http.StatusNotFound, tenantNotFoundMessage)
				return
			}

			selected := restaurants[0]
			if wanted := r.Header.Get(TenantHeader); wanted != "" {
				selected = nil
				for _, restaurant := range restaurants {
					if restaurant.ID == wanted {
						selected = restaurant
						break
					}
				}
				if selected == nil {
					// Not owned and nonexistent are indistinguishable.
					writeMessage(w, http.StatusNotFound, tenantNotFoundMessage)
					return
				}
			}

			tenant := &model.Tenant{
				RestaurantID: selected.ID,
				Slug:         selected.Slug,
			}

			ctx := auth.ContextWithTenant(r.Context(), tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
