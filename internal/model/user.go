// Package model defines domain entities for the application.
package model

import "time"

// User is a restaurant owner account. A user may own several restaurants,
// though the dashboard operates on one active restaurant at a time.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
