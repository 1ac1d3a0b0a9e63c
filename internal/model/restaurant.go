package model

import "time"

// Restaurant is the tenant entity. Every menu item, promotion and ledger
// entry is scoped to exactly one restaurant, and every restaurant is owned
// by exactly one user.
type Restaurant struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	LogoURL        *string   `json:"logoUrl"`
	BannerImageURL *string   `json:"bannerImageUrl"`
	PrimaryColor   *string   `json:"primaryColor"`
	WhatsappNumber *string   `json:"whatsappNumber"`
	PhoneNumber    *string   `json:"phoneNumber"`
	Location       *string   `json:"location"`
	InstagramURL   *string   `json:"instagramUrl"`
	WelcomeMessage *string   `json:"welcomeMessage"`
	LayoutType     *string   `json:"layoutType"`
	OpeningHours   []string  `json:"openingHours"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
