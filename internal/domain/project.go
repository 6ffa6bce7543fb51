package domain

import "time"

// Project is the top-level container for epics.
type Project struct {
	Slug        string
	Name        string
	Description string
	Status      string
	CreatorID   string
	Teams       []Team
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
