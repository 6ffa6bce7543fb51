package dto

import "github.com/atlasboard/tracker-service/internal/domain"

// CreateStatusRequest payload for new workflow statuses.
type CreateStatusRequest struct {
	Name string `json:"name"`
}

// StatusResponse is the workflow status shape.
type StatusResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewStatusResponse shapes a domain status for output.
func NewStatusResponse(status *domain.Status) StatusResponse {
	return StatusResponse{ID: status.ID, Name: status.Name}
}

// NewStatusResponses shapes a slice of domain statuses.
func NewStatusResponses(statuses []domain.Status) []StatusResponse {
	out := make([]StatusResponse, 0, len(statuses))
	for i := range statuses {
		out = append(out, NewStatusResponse(&statuses[i]))
	}
	return out
}
