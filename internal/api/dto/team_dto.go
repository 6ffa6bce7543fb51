package dto

import (
	"time"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CreateTeamRequest payload for new teams. Members are usernames.
type CreateTeamRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// UpdateTeamRequest carries partial-update fields. The slug is immutable and
// never accepted here.
type UpdateTeamRequest struct {
	Name    *string  `json:"name"`
	Members []string `json:"members"`
}

// TeamResponse is the team shape returned by team endpoints.
type TeamResponse struct {
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	CreatorID string         `json:"creator_id"`
	Members   []UserResponse `json:"members,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewTeamResponse shapes a domain team for output.
func NewTeamResponse(team *domain.Team) TeamResponse {
	return TeamResponse{
		Slug:      team.Slug,
		Name:      team.Name,
		CreatorID: team.CreatorID,
		Members:   NewUserResponses(team.Members),
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}
}

// NewTeamResponses shapes a slice of domain teams.
func NewTeamResponses(teams []domain.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, NewTeamResponse(&teams[i]))
	}
	return out
}
