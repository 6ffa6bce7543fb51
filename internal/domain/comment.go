package domain

import "time"

// Comment attaches discussion to exactly one epic or ticket.
type Comment struct {
	ID        int64
	Content   string
	CreatorID string
	EpicID    *int64
	TicketID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
