// Command bootstrap-owner provisions an owner account with a first
// restaurant directly in the database. Useful for local development and
// demo environments where the register/login flow is overkill.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/model"
	"github.com/tavolo/tavolo/internal/repository"
)

type output struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	RestaurantID string `json:"restaurant_id"`
	Slug         string `json:"slug"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "owner@tavolo.local", "Owner email")
		password    = flag.String("password", "", "Owner password (required)")
		name        = flag.String("name", "Demo Restaurant", "Restaurant name")
		slug        = flag.String("slug", "demo", "Restaurant slug")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repository.Migrate(*databaseURL); err != nil {
		fmt.Fprintln(os.Stderr, "apply migrations:", err)
		os.Exit(1)
	}

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        *email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	restaurant := &model.Restaurant{
		ID:           ulid.Make().String(),
		UserID:       user.ID,
		Name:         *name,
		Slug:         *slug,
		OpeningHours: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.CreateRestaurant(ctx, restaurant); err != nil {
		fmt.Fprintln(os.Stderr, "create restaurant:", err)
		os.Exit(1)
	}

	out := output{
		UserID:       user.ID,
		Email:        user.Email,
		RestaurantID: restaurant.ID,
		Slug:         restaurant.Slug,
	}

	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Printf("user:       %s (%s)\n", out.UserID, out.Email)
	fmt.Printf("restaurant: %s (/public/%s)\n", out.RestaurantID, out.Slug)
}
