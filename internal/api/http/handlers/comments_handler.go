package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/atlasboard/tracker-service/internal/api/dto"
	"github.com/atlasboard/tracker-service/internal/auth"
	"github.com/atlasboard/tracker-service/internal/domain"
	"github.com/atlasboard/tracker-service/internal/repository"
	"github.com/atlasboard/tracker-service/internal/validation"
	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// CommentsHandler manages comment CRUD endpoints.
type CommentsHandler struct {
	comments repository.CommentRepository
	epics    repository.EpicRepository
	tickets  repository.TicketRepository
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments repository.CommentRepository, epics repository.EpicRepository, tickets repository.TicketRepository) *CommentsHandler {
	return &CommentsHandler{comments: comments, epics: epics, tickets: tickets}
}

// Create handles POST /comments. The schema guarantees exactly one parent
// reference; the referenced epic or ticket must exist.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.CommentCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ctx := c.UserContext()
	switch {
	case req.EpicID != nil:
		if _, err := h.epics.GetByID(ctx, *req.EpicID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("epic does not exist", map[string]any{"epic_id": *req.EpicID})
			}
			return err
		}
	case req.TicketID != nil:
		if _, err := h.tickets.GetByID(ctx, *req.TicketID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("ticket does not exist", map[string]any{"ticket_id": *req.TicketID})
			}
			return err
		}
	}

	comment := &domain.Comment{
		Content:   req.Content,
		CreatorID: claims.UserID,
		EpicID:    req.EpicID,
		TicketID:  req.TicketID,
	}
	if err := h.comments.Create(ctx, comment); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// List handles GET /comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	comments, err := h.comments.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponses(comments)})
}

// Get handles GET /comments/:id.
func (h *CommentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.comments.GetByID(c.UserContext(), id)
	if err != nil {
		return notFoundIfNoRows(err, "comment")
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListByEpic handles GET /epics/:id/comments.
func (h *CommentsHandler) ListByEpic(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	epic, err := h.epics.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "epic")
	}
	comments, err := h.comments.ListByEpic(ctx, epic.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponses(comments)})
}

// ListByTicket handles GET /tickets/:id/comments.
func (h *CommentsHandler) ListByTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	ticket, err := h.tickets.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "ticket")
	}
	comments, err := h.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponses(comments)})
}

// Update handles PATCH /comments/:id. Only the content is mutable; a comment
// never moves between parents.
func (h *CommentsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.CommentUpdate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	comment, err := h.comments.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "comment")
	}

	if req.Content != nil {
		comment.Content = *req.Content
		if err := h.comments.Update(ctx, comment); err != nil {
			return notFoundIfNoRows(err, "comment")
		}
	}

	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// Delete handles DELETE /comments/:id.
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.UserContext(), id); err != nil {
		return notFoundIfNoRows(err, "comment")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
