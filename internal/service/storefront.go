package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

// ErrRestaurantNotFound is returned when no restaurant matches a slug.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// Storefront is the public view of a restaurant: branding plus the
// promotions currently running.
type Storefront struct {
	Restaurant *model.Restaurant  `json:"restaurant"`
	Promotions []*model.Promotion `json:"promotions"`
}

// StorefrontService serves the unauthenticated public pages.
type StorefrontService struct {
	restaurants RestaurantRepository
	menu        MenuRepository
	promotions  PromotionRepository
	metrics     metrics.Recorder
}

// NewStorefrontService creates a new StorefrontService.
func NewStorefrontService(restaurants RestaurantRepository, menu MenuRepository, promotions PromotionRepository, recorder metrics.Recorder) *StorefrontService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &StorefrontService{
		restaurants: restaurants,
		menu:        menu,
		promotions:  promotions,
		metrics:     recorder,
	}
}

// View returns the storefront for a slug: the restaurant's branding and
// its active promotions only.
func (s *StorefrontService) View(ctx context.Context, slug string) (*Storefront, error) {
	restaurant, err := s.lookup(ctx, slug)
	if err != nil {
		return nil, err
	}

	promos, err := s.promotions.ListActivePromotions(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}

	s.metrics.IncStorefrontView()

	return &Storefront{Restaurant: restaurant, Promotions: promos}, nil
}

// Menu returns the public menu for a slug, newest first.
func (s *StorefrontService) Menu(ctx context.Context, slug string) ([]*model.MenuItem, error) {
	restaurant, err := s.lookup(ctx, slug)
	if err != nil {
		return nil, err
	}

	items, err := s.menu.ListMenuItems(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *StorefrontService) lookup(ctx context.Context, slug string) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("get restaurant by slug: %w", err)
	}
	return restaurant, nil
}
