package model

import "time"

// Session is a server-side login session stored in Redis. The token itself
// is opaque and never persisted; only a derived cache key is.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Principal is the authenticated identity injected into the request
// context by the auth middleware.
type Principal struct {
	UserID string
	Email  string
}

// Tenant is the restaurant resolved for the current request. Every scoped
// data operation filters by or attaches RestaurantID.
type Tenant struct {
	RestaurantID string
	Slug         string
}
