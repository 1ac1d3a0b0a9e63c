package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/tavolo/tavolo/internal/model"
)

// Common errors for restaurant repository operations.
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrSlugExists         = errors.New("slug already exists")
)

const restaurantColumns = `
	id, user_id, name, slug, logo_url, banner_image_url, primary_color,
	whatsapp_number, phone_number, location, instagram_url, welcome_message,
	layout_type, opening_hours, created_at, updated_at
`

// CreateRestaurant inserts a new restaurant owned by a user.
func (r *Repository) CreateRestaurant(ctx context.Context, restaurant *model.Restaurant) error {
	query := `
		INSERT INTO restaurants (
			id, user_id, name, slug, logo_url, banner_image_url, primary_color,
			whatsapp_number, phone_number, location, instagram_url,
			welcome_message, layout_type, opening_hours, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		restaurant.ID,
		restaurant.UserID,
		restaurant.Name,
		restaurant.Slug,
		restaurant.LogoURL,
		restaurant.BannerImageURL,
		restaurant.PrimaryColor,
		restaurant.WhatsappNumber,
		restaurant.PhoneNumber,
		restaurant.Location,
		restaurant.InstagramURL,
		restaurant.WelcomeMessage,
		restaurant.LayoutType,
		pq.Array(restaurant.OpeningHours),
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

// ListRestaurantsByUser returns all restaurants owned by a user, oldest
// first. The first element is the default active tenant.
func (r *Repository) ListRestaurantsByUser(ctx context.Context, userID string) ([]*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*model.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

// GetRestaurantBySlug retrieves a restaurant by its public slug.
// This is the public storefront lookup path.
func (r *Repository) GetRestaurantBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`

	restaurant, err := scanRestaurant(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant by slug: %w", err)
	}

	return restaurant, nil
}

// scanRestaurant scans a single row into a Restaurant model.
func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := row.Scan(
		&restaurant.ID,
		&restaurant.UserID,
		&restaurant.Name,
		&restaurant.Slug,
		&restaurant.LogoURL,
		&restaurant.BannerImageURL,
		&restaurant.PrimaryColor,
		&restaurant.WhatsappNumber,
		&restaurant.PhoneNumber,
		&restaurant.Location,
		&restaurant.InstagramURL,
		&restaurant.WelcomeMessage,
		&restaurant.LayoutType,
		pq.Array(&restaurant.OpeningHours),
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	return &restaurant, err
}
