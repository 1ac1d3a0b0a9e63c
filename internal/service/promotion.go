package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tavolo/tavolo/internal/metrics"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

// Promotion service errors.
var (
	ErrMissingPromotionFields = errors.New("message and active are required")
	ErrPromotionNotFound      = errors.New("promotion not found")
)

// PromotionInput defines input for creating or overwriting a promotion.
// The active flag must be explicitly provided; false is a valid value,
// absence is not.
type PromotionInput struct {
	Message string
	Active  bool
}

// PromotionService handles promotion business logic.
type PromotionService struct {
	promotions PromotionRepository
	metrics    metrics.Recorder
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(promotions PromotionRepository, recorder metrics.Recorder) *PromotionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PromotionService{promotions: promotions, metrics: recorder}
}

// List returns all promotions for a tenant, newest first.
func (s *PromotionService) List(ctx context.Context, restaurantID string) ([]*model.Promotion, error) {
	promos, err := s.promotions.ListPromotions(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	return promos, nil
}

// Get returns one promotion, scoped to the tenant.
func (s *PromotionService) Get(ctx context.Context, id, restaurantID string) (*model.Promotion, error) {
	promo, err := s.promotions.GetPromotion(ctx, id, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return promo, nil
}

// Create adds a promotion to the tenant's storefront.
func (s *PromotionService) Create(ctx context.Context, restaurantID string, input PromotionInput) (*model.Promotion, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrMissingPromotionFields
	}

	now := time.Now().UTC()
	promo := &model.Promotion{
		ID:           newID(),
		Message:      input.Message,
		Active:       input.Active,
		RestaurantID: restaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.promotions.CreatePromotion(ctx, promo); err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	s.metrics.IncPromotionCreated()

	return promo, nil
}

// Update overwrites a promotion after verifying it exists under the tenant.
func (s *PromotionService) Update(ctx context.Context, id, restaurantID string, input PromotionInput) (*model.Promotion, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrMissingPromotionFields
	}

	existing, err := s.Get(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}

	promo := &model.Promotion{
		ID:           existing.ID,
		Message:      input.Message,
		Active:       input.Active,
		RestaurantID: restaurantID,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.promotions.UpdatePromotion(ctx, promo); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("update promotion: %w", err)
	}

	s.metrics.IncPromotionUpdated()

	return promo, nil
}

// Delete removes a promotion, scoped to the tenant.
func (s *PromotionService) Delete(ctx context.Context, id, restaurantID string) error {
	if err := s.promotions.DeletePromotion(ctx, id, restaurantID); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return ErrPromotionNotFound
		}
		return fmt.Errorf("delete promotion: %w", err)
	}

	s.metrics.IncPromotionDeleted()

	return nil
}
