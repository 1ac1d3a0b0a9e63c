// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/money"
)

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents an owner account in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a user model to its API shape.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse is the confirmation envelope for non-entity responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateRestaurantRequest represents the request body for provisioning a
// restaurant.
type CreateRestaurantRequest struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	LogoURL        *string  `json:"logoUrl"`
	BannerImageURL *string  `json:"bannerImageUrl"`
	PrimaryColor   *string  `json:"primaryColor"`
	WhatsappNumber *string  `json:"whatsappNumber"`
	PhoneNumber    *string  `json:"phoneNumber"`
	Location       *string  `json:"location"`
	InstagramURL   *string  `json:"instagramUrl"`
	WelcomeMessage *string  `json:"welcomeMessage"`
	LayoutType     *string  `json:"layoutType"`
	OpeningHours   []string `json:"openingHours"`
}

// MenuItemRequest represents the request body for creating or overwriting
// a menu item. The same shape serves POST and PUT; PUT is a full
// overwrite, so omitted optional fields clear the stored values.
type MenuItemRequest struct {
	Name        string       `json:"name"`
	Price       money.Amount `json:"price"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	ImageURL    *string      `json:"imageUrl"`
}

// PromotionRequest represents the request body for creating or
// overwriting a promotion. Active is a pointer so an absent flag can be
// rejected while an explicit false is accepted.
type PromotionRequest struct {
	Message string `json:"message"`
	Active  *bool  `json:"active"`
}

// LedgerEntryRequest represents the request body for recording an income
// or expense entry.
type LedgerEntryRequest struct {
	Value money.Amount `json:"value"`
	Note  *string      `json:"note"`
	Date  string       `json:"date"`
}
