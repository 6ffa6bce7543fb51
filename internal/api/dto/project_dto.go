package dto

import (
	"time"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CreateProjectRequest payload for new projects. Teams are team slugs.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Teams       []string `json:"teams"`
}

// UpdateProjectRequest carries partial-update fields.
type UpdateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Teams       []string `json:"teams"`
}

// ProjectResponse is the project shape returned by project endpoints.
type ProjectResponse struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	CreatorID   string         `json:"creator_id"`
	Teams       []TeamResponse `json:"teams,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewProjectResponse shapes a domain project for output.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		Slug:        project.Slug,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CreatorID:   project.CreatorID,
		Teams:       NewTeamResponses(project.Teams),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// NewProjectResponses shapes a slice of domain projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
