package domain

import "time"

// Team groups users under an immutable slug derived from its name.
type Team struct {
	Slug      string
	Name      string
	CreatorID string
	Members   []User
	CreatedAt time.Time
	UpdatedAt time.Time
}
