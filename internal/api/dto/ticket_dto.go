package dto

import (
	"time"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CreateTicketRequest payload for new tickets.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	EpicID      int64   `json:"epic_id"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateTicketRequest carries partial-update fields. The owning epic is fixed
// at creation.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assignee_id"`
}

// TicketResponse is the ticket shape returned by ticket endpoints.
type TicketResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	StatusID    int64     `json:"status_id"`
	EpicID      int64     `json:"epic_id"`
	CreatorID   string    `json:"creator_id"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTicketResponse shapes a domain ticket for output.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    string(ticket.Priority),
		StatusID:    ticket.StatusID,
		EpicID:      ticket.EpicID,
		CreatorID:   ticket.CreatorID,
		AssigneeID:  ticket.AssigneeID,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketResponses shapes a slice of domain tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
