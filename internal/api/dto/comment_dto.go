package dto

import (
	"time"

	"github.com/atlasboard/tracker-service/internal/domain"
)

// CreateCommentRequest payload for new comments. Exactly one of EpicID or
// TicketID must be set.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	EpicID   *int64 `json:"epic_id"`
	TicketID *int64 `json:"ticket_id"`
}

// UpdateCommentRequest carries partial-update fields. The parent is fixed at
// creation.
type UpdateCommentRequest struct {
	Content *string `json:"content"`
}

// CommentResponse is the comment shape returned by comment endpoints.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatorID string    `json:"creator_id"`
	EpicID    *int64    `json:"epic_id,omitempty"`
	TicketID  *int64    `json:"ticket_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCommentResponse shapes a domain comment for output.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatorID: comment.CreatorID,
		EpicID:    comment.EpicID,
		TicketID:  comment.TicketID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// NewCommentResponses shapes a slice of domain comments.
func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
