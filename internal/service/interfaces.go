// Package service provides business logic for the application.
package service

import (
	"context"
	"time"

	"github.com/tavolo/tavolo/internal/model"
)

// The interfaces below are the narrow repository surfaces each service
// needs. *repository.Repository satisfies all of them; tests substitute
// in-memory fakes.

// UserRepository persists owner accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// RestaurantRepository persists tenants.
type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, restaurant *model.Restaurant) error
	ListRestaurantsByUser(ctx context.Context, userID string) ([]*model.Restaurant, error)
	GetRestaurantBySlug(ctx context.Context, slug string) (*model.Restaurant, error)
}

// MenuRepository persists menu items.
type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID string) ([]*model.MenuItem, error)
	GetMenuItem(ctx context.Context, id, restaurantID string) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *model.MenuItem) error
	DeleteMenuItem(ctx context.Context, id, restaurantID string) error
}

// PromotionRepository persists promotions.
type PromotionRepository interface {
	CreatePromotion(ctx context.Context, promo *model.Promotion) error
	ListPromotions(ctx context.Context, restaurantID string) ([]*model.Promotion, error)
	ListActivePromotions(ctx context.Context, restaurantID string) ([]*model.Promotion, error)
	GetPromotion(ctx context.Context, id, restaurantID string) (*model.Promotion, error)
	UpdatePromotion(ctx context.Context, promo *model.Promotion) error
	DeletePromotion(ctx context.Context, id, restaurantID string) error
}

// LedgerRepository persists income and expense entries.
type LedgerRepository interface {
	CreateLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error
	ListLedgerEntries(ctx context.Context, restaurantID string, kind model.LedgerKind) ([]*model.LedgerEntry, error)
	SummarizeLedger(ctx context.Context, restaurantID string, from, to *time.Time) (*model.LedgerSummary, error)
}

// SessionStore holds login sessions.
type SessionStore interface {
	SetSession(ctx context.Context, token string, sess *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
