package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/tavolo/internal/model"
)

func TestRestaurantCreate(t *testing.T) {
	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)
	ctx := context.Background()

	logo := "https://cdn.example.com/logo.png"
	restaurant, err := svc.Create(ctx, "user-1", CreateRestaurantInput{
		Name:         "Trattoria Roma",
		Slug:         "Trattoria-Roma",
		LogoURL:      &logo,
		OpeningHours: []string{"Mon-Fri 12:00-22:00"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, restaurant.ID)
	assert.Equal(t, "trattoria-roma", restaurant.Slug, "slug is lowercased")
	assert.Equal(t, "user-1", restaurant.UserID)
	require.NotNil(t, restaurant.LogoURL)
	assert.Equal(t, logo, *restaurant.LogoURL)
}

func TestRestaurantCreateValidation(t *testing.T) {
	svc := NewRestaurantService(newFakeRestaurantRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateRestaurantInput
		want  error
	}{
		{"missing name", CreateRestaurantInput{Slug: "roma"}, ErrMissingRestaurantFields},
		{"missing slug", CreateRestaurantInput{Name: "Roma"}, ErrMissingRestaurantFields},
		{"slug too short", CreateRestaurantInput{Name: "Roma", Slug: "ro"}, ErrInvalidSlug},
		{"slug bad chars", CreateRestaurantInput{Name: "Roma", Slug: "roma!"}, ErrInvalidSlug},
		{"reserved slug", CreateRestaurantInput{Name: "Roma", Slug: "admin"}, ErrSlugReserved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "user-1", tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRestaurantCreateDuplicateSlug(t *testing.T) {
	svc := NewRestaurantService(newFakeRestaurantRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", CreateRestaurantInput{Name: "Roma", Slug: "roma"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-2", CreateRestaurantInput{Name: "Other Roma", Slug: "roma"})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestRestaurantListOldestFirst(t *testing.T) {
	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	repo.restaurants["r2"] = &model.Restaurant{ID: "r2", UserID: "user-1", Slug: "second", CreatedAt: now}
	repo.restaurants["r1"] = &model.Restaurant{ID: "r1", UserID: "user-1", Slug: "first", CreatedAt: now.Add(-time.Hour)}
	repo.restaurants["r3"] = &model.Restaurant{ID: "r3", UserID: "user-2", Slug: "other", CreatedAt: now.Add(-2 * time.Hour)}

	restaurants, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, "r1", restaurants[0].ID)
	assert.Equal(t, "r2", restaurants[1].ID)
}
