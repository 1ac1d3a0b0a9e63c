package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tavolo/tavolo/internal/model"
)

// ErrPromotionNotFound indicates no promotion matched both the id and the
// tenant scope.
var ErrPromotionNotFound = errors.New("promotion not found")

const promotionColumns = `id, restaurant_id, message, active, created_at, updated_at`

// CreatePromotion inserts a new promotion scoped to a restaurant.
func (r *Repository) CreatePromotion(ctx context.Context, promo *model.Promotion) error {
	query := `
		INSERT INTO promotions (id, restaurant_id, message, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		promo.ID,
		promo.RestaurantID,
		promo.Message,
		promo.Active,
		promo.CreatedAt,
		promo.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	return nil
}

// ListPromotions returns every promotion for a restaurant, newest first.
func (r *Repository) ListPromotions(ctx context.Context, restaurantID string) ([]*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE restaurant_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	var promos []*model.Promotion
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promos = append(promos, promo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promos, nil
}

// ListActivePromotions returns the promotions shown on the public
// storefront, newest first.
func (r *Repository) ListActivePromotions(ctx context.Context, restaurantID string) ([]*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE restaurant_id = $1 AND active ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active promotions: %w", err)
	}
	defer rows.Close()

	var promos []*model.Promotion
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promos = append(promos, promo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promos, nil
}

// GetPromotion retrieves a promotion by id within a tenant scope.
func (r *Repository) GetPromotion(ctx context.Context, id, restaurantID string) (*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1 AND restaurant_id = $2`

	promo, err := scanPromotion(r.pool.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	return promo, nil
}

// UpdatePromotion overwrites a promotion's message and active flag.
func (r *Repository) UpdatePromotion(ctx context.Context, promo *model.Promotion) error {
	query := `
		UPDATE promotions
		SET message = $3, active = $4, updated_at = $5
		WHERE id = $1 AND restaurant_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		promo.ID,
		promo.RestaurantID,
		promo.Message,
		promo.Active,
		promo.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPromotionNotFound
	}

	return nil
}

// DeletePromotion removes a promotion within a tenant scope.
func (r *Repository) DeletePromotion(ctx context.Context, id, restaurantID string) error {
	query := `DELETE FROM promotions WHERE id = $1 AND restaurant_id = $2`

	result, err := r.pool.Exec(ctx, query, id, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPromotionNotFound
	}

	return nil
}

// scanPromotion scans a single row into a Promotion model.
func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	var promo model.Promotion
	err := row.Scan(
		&promo.ID,
		&promo.RestaurantID,
		&promo.Message,
		&promo.Active,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
	return &promo, err
}
