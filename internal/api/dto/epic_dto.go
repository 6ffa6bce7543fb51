package dto

import (
	"time"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CreateEpicRequest payload for new epics. Status is a workflow status name.
type CreateEpicRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	ProjectSlug string  `json:"project_slug"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateEpicRequest carries partial-update fields. The owning project is
// fixed at creation.
type UpdateEpicRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assignee_id"`
}

// EpicResponse is the epic shape returned by epic endpoints.
type EpicResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	StatusID    int64     `json:"status_id"`
	ProjectSlug string    `json:"project_slug"`
	CreatorID   string    `json:"creator_id"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEpicResponse shapes a domain epic for output.
func NewEpicResponse(epic *domain.Epic) EpicResponse {
	return EpicResponse{
		ID:          epic.ID,
		Title:       epic.Title,
		Description: epic.Description,
		Priority:    string(epic.Priority),
		StatusID:    epic.StatusID,
		ProjectSlug: epic.ProjectSlug,
		CreatorID:   epic.CreatorID,
		AssigneeID:  epic.AssigneeID,
		CreatedAt:   epic.CreatedAt,
		UpdatedAt:   epic.UpdatedAt,
	}
}

// NewEpicResponses shapes a slice of domain epics.
func NewEpicResponses(epics []domain.Epic) []EpicResponse {
	out := make([]EpicResponse, 0, len(epics))
	for i := range epics {
		out = append(out, NewEpicResponse(&epics[i]))
	}
	return out
}
