package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tavolo/tavolo/internal/model"
)

// ErrMenuItemNotFound indicates no menu item matched both the id and the
// tenant scope. Guessing another tenant's id yields the same error.
var ErrMenuItemNotFound = errors.New("menu item not found")

const menuItemColumns = `
	id, restaurant_id, name, price_cents, description, category, image_url,
	created_at, updated_at
`

// CreateMenuItem inserts a new menu item scoped to a restaurant.
func (r *Repository) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, restaurant_id, name, price_cents, description, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Price,
		item.Description,
		item.Category,
		item.ImageURL,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return nil
}

// ListMenuItems returns every menu item for a restaurant, newest first.
// The dashboard renders the full set; there is no pagination.
func (r *Repository) ListMenuItems(ctx context.Context, restaurantID string) ([]*model.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// GetMenuItem retrieves a menu item by id within a tenant scope.
func (r *Repository) GetMenuItem(ctx context.Context, id, restaurantID string) (*model.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1 AND restaurant_id = $2`

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return item, nil
}

// UpdateMenuItem overwrites a menu item's mutable fields. Optional fields
// are written as given - nil clears the column.
func (r *Repository) UpdateMenuItem(ctx context.Context, item *model.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $3, price_cents = $4, description = $5, category = $6, image_url = $7, updated_at = $8
		WHERE id = $1 AND restaurant_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Price,
		item.Description,
		item.Category,
		item.ImageURL,
		item.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}

// DeleteMenuItem removes a menu item within a tenant scope.
func (r *Repository) DeleteMenuItem(ctx context.Context, id, restaurantID string) error {
	query := `DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`

	result, err := r.pool.Exec(ctx, query, id, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}

// scanMenuItem scans a single row into a MenuItem model.
func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var item model.MenuItem
	err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Price,
		&item.Description,
		&item.Category,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return &item, err
}
