package auth

import (
	"context"

	"github.com/tavolo/tavolo/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	principalContextKey contextKey = "principal"
	tenantContextKey    contextKey = "tenant"
)

// ContextWithPrincipal adds the authenticated principal to the context.
func ContextWithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the principal from the context.
// Returns nil if the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *model.Principal {
	p, ok := ctx.Value(principalContextKey).(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

// ContextWithTenant adds the resolved tenant to the context.
func ContextWithTenant(ctx context.Context, t *model.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, t)
}

// TenantFromContext retrieves the tenant from the context.
// Returns nil if tenant resolution has not run.
func TenantFromContext(ctx context.Context) *model.Tenant {
	t, ok := ctx.Value(tenantContextKey).(*model.Tenant)
	if !ok {
		return nil
	}
	return t
}

// MustTenantFromContext retrieves the tenant from the context.
// Panics if not present (use only below the tenant middleware).
func MustTenantFromContext(ctx context.Context) *model.Tenant {
	t := TenantFromContext(ctx)
	if t == nil {
		panic("tenant context not found - ensure tenant middleware is applied")
	}
	return t
}
