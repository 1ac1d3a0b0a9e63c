package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/money"
	"github.com/tavolo/tavolo/internal/repository"
)

// Menu service errors.
var (
	ErrMissingMenuFields = errors.New("name and price are required")
	ErrMenuItemNotFound  = errors.New("menu item not found")
)

// MenuItemInput defines input for creating or overwriting a menu item.
// Optional fields left nil are stored as NULL - updates are full
// overwrites, never partial patches.
type MenuItemInput struct {
	Name        string
	Price       money.Amount
	Description *string
	Category    *string
	ImageURL    *string
}

// MenuService handles menu item business logic.
type MenuService struct {
	menu    MenuRepository
	metrics metrics.Recorder
}

// NewMenuService creates a new MenuService.
func NewMenuService(menu MenuRepository, recorder metrics.Recorder) *MenuService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MenuService{menu: menu, metrics: recorder}
}

// List returns all menu items for a tenant, newest first.
func (s *MenuService) List(ctx context.Context, restaurantID string) ([]*model.MenuItem, error) {
	items, err := s.menu.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// Get returns one menu item, scoped to the tenant.
func (s *MenuService) Get(ctx context.Context, id, restaurantID string) (*model.MenuItem, error) {
	item, err := s.menu.GetMenuItem(ctx, id, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// Create adds a menu item to the tenant's menu.
// A zero price counts as missing, matching the presence check on name.
func (s *MenuService) Create(ctx context.Context, restaurantID string, input MenuItemInput) (*model.MenuItem, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price.IsZero() {
		return nil, ErrMissingMenuFields
	}

	now := time.Now().UTC()
	item := &model.MenuItem{
		ID:           newID(),
		Name:         input.Name,
		Price:        input.Price,
		Description:  input.Description,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		RestaurantID: restaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.metrics.IncMenuItemCreated()

	return item, nil
}

// Update overwrites a menu item after verifying it exists under the
// tenant. An id belonging to another tenant is indistinguishable from a
// missing one.
func (s *MenuService) Update(ctx context.Context, id, restaurantID string, input MenuItemInput) (*model.MenuItem, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price.IsZero() {
		return nil, ErrMissingMenuFields
	}

	existing, err := s.Get(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}

	item := &model.MenuItem{
		ID:           existing.ID,
		Name:         input.Name,
		Price:        input.Price,
		Description:  input.Description,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		RestaurantID: restaurantID,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.menu.UpdateMenuItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	s.metrics.IncMenuItemUpdated()

	return item, nil
}

// Delete removes a menu item, scoped to the tenant.
func (s *MenuService) Delete(ctx context.Context, id, restaurantID string) error {
	if err := s.menu.DeleteMenuItem(ctx, id, restaurantID); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("delete menu item: %w", err)
	}

	s.metrics.IncMenuItemDeleted()

	return nil
}
