package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

// Restaurant service errors.
var (
	ErrMissingRestaurantFields = errors.New("name and slug are required")
	ErrInvalidSlug             = errors.New("invalid slug format")
	ErrSlugReserved            = errors.New("slug is reserved")
	ErrSlugExists              = errors.New("slug already exists")
)

// Slug format: 3-50 chars, lowercase alphanumeric plus hyphen.
var slugRegex = regexp.MustCompile(`^[a-z0-9-]{3,50}$`)

// reservedSlugs are storefront paths a restaurant cannot claim.
var reservedSlugs = map[string]bool{
	"api":     true,
	"admin":   true,
	"public":  true,
	"healthz": true,
	"readyz":  true,
	"metrics": true,
	"static":  true,
	"assets":  true,
	"login":   true,
	"logout":  true,
	"auth":    true,
	"tavolo":  true,
}

// CreateRestaurantInput defines input for provisioning a restaurant.
type CreateRestaurantInput struct {
	Name           string
	Slug           string
	LogoURL        *string
	BannerImageURL *string
	PrimaryColor   *string
	WhatsappNumber *string
	PhoneNumber    *string
	Location       *string
	InstagramURL   *string
	WelcomeMessage *string
	LayoutType     *string
	OpeningHours   []string
}

// RestaurantService handles tenant provisioning and listing.
type RestaurantService struct {
	restaurants RestaurantRepository
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(restaurants RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants}
}

// List returns all restaurants owned by a user, oldest first.
func (s *RestaurantService) List(ctx context.Context, userID string) ([]*model.Restaurant, error) {
	restaurants, err := s.restaurants.ListRestaurantsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// Create provisions a new restaurant for a user.
func (s *RestaurantService) Create(ctx context.Context, userID string, input CreateRestaurantInput) (*model.Restaurant, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Slug) == "" {
		return nil, ErrMissingRestaurantFields
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugRegex.MatchString(slug) {
		return nil, ErrInvalidSlug
	}
	if reservedSlugs[slug] {
		return nil, ErrSlugReserved
	}

	now := time.Now().UTC()
	restaurant := &model.Restaurant{
		ID:             newID(),
		UserID:         userID,
		Name:           strings.TrimSpace(input.Name),
		Slug:           slug,
		LogoURL:        input.LogoURL,
		BannerImageURL: input.BannerImageURL,
		PrimaryColor:   input.PrimaryColor,
		WhatsappNumber: input.WhatsappNumber,
		PhoneNumber:    input.PhoneNumber,
		Location:       input.Location,
		InstagramURL:   input.InstagramURL,
		WelcomeMessage: input.WelcomeMessage,
		LayoutType:     input.LayoutType,
		OpeningHours:   input.OpeningHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if restaurant.OpeningHours == nil {
		restaurant.OpeningHours = []string{}
	}

	if err := s.restaurants.CreateRestaurant(ctx, restaurant); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	return restaurant, nil
}
