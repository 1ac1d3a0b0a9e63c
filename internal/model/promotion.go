package model

import "time"

// Promotion is a banner message a restaurant can toggle on its storefront.
type Promotion struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	Active       bool      `json:"active"`
	RestaurantID string    `json:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
