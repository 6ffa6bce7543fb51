package domain

import "time"

// Priority enumerates urgency for epics and tickets.
type Priority string

const (
	PriorityFrozen Priority = "frozen"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists all valid priority values.
func Priorities() []string {
	return []string{
		string(PriorityFrozen),
		string(PriorityLow),
		string(PriorityMedium),
		string(PriorityHigh),
	}
}

// Epic is a grouping of tickets representing a larger feature within a project.
type Epic struct {
	ID          int64
	Title       string
	Description string
	Priority    Priority
	StatusID    int64
	ProjectSlug string
	CreatorID   string
	AssigneeID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
