package model

import (
	"time"

	"github.com/tavolo/tavolo/internal/money"
)

// MenuItem is a dish or product on a restaurant's menu.
// Optional fields are pointers: an update that omits them resets them to
// NULL (full overwrite, not a partial patch).
type MenuItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Price        money.Amount `json:"price"`
	Description  *string      `json:"description"`
	Category     *string      `json:"category"`
	ImageURL     *string      `json:"imageUrl"`
	RestaurantID string       `json:"restaurantId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
