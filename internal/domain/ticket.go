package domain

import "time"

// Ticket is a unit of work belonging to an epic.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Priority    Priority
	StatusID    int64
	EpicID      int64
	CreatorID   string
	AssigneeID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
