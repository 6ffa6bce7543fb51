package domain

import "time"

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Position     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
