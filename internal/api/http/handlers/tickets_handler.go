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
	"github.com/atlasboard/tracker-service/internal/service"
	"github.com/atlasboard/tracker-service/internal/validation"
	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// TicketsHandler manages ticket CRUD endpoints and AI summaries.
type TicketsHandler struct {
	tickets   repository.TicketRepository
	epics     repository.EpicRepository
	statuses  repository.StatusRepository
	users     repository.UserRepository
	comments  repository.CommentRepository
	summaries *service.SummaryService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(
	tickets repository.TicketRepository,
	epics repository.EpicRepository,
	statuses repository.StatusRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	summaries *service.SummaryService,
) *TicketsHandler {
	return &TicketsHandler{
		tickets:   tickets,
		epics:     epics,
		statuses:  statuses,
		users:     users,
		comments:  comments,
		summaries: summaries,
	}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.TicketCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ctx := c.UserContext()
	if _, err := h.epics.GetByID(ctx, req.EpicID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("epic does not exist", map[string]any{"epic_id": req.EpicID})
		}
		return err
	}

	status, err := resolveStatus(c, h.statuses, req.Status)
	if err != nil {
		return err
	}
	if err := requireAssignee(c, h.users, req.AssigneeID); err != nil {
		return err
	}

	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}

	ticket := &domain.Ticket{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		StatusID:    status.ID,
		EpicID:      req.EpicID,
		CreatorID:   claims.UserID,
		AssigneeID:  req.AssigneeID,
	}
	if err := h.tickets.Create(ctx, ticket); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.tickets.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// ListByEpic handles GET /epics/:id/tickets.
func (h *TicketsHandler) ListByEpic(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	epic, err := h.epics.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "epic")
	}
	tickets, err := h.tickets.ListByEpic(ctx, epic.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetByID(c.UserContext(), id)
	if err != nil {
		return notFoundIfNoRows(err, "ticket")
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Update handles PATCH /tickets/:id. Only provided fields change; the owning
// epic is fixed at creation.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.TicketUpdate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	ticket, err := h.tickets.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "ticket")
	}

	if req.Title != nil {
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Priority != nil {
		ticket.Priority = domain.Priority(*req.Priority)
	}
	if req.Status != nil {
		status, err := resolveStatus(c, h.statuses, *req.Status)
		if err != nil {
			return err
		}
		ticket.StatusID = status.ID
	}
	if req.AssigneeID != nil {
		if err := requireAssignee(c, h.users, req.AssigneeID); err != nil {
			return err
		}
		ticket.AssigneeID = req.AssigneeID
	}

	if err := h.tickets.Update(ctx, ticket); err != nil {
		return notFoundIfNoRows(err, "ticket")
	}

	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Delete handles DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.UserContext(), id); err != nil {
		return notFoundIfNoRows(err, "ticket")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Summary handles GET /tickets/:id/summary.
func (h *TicketsHandler) Summary(c *fiber.Ctx) error {
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

	summary, err := h.summaries.Summarize(ctx, "ticket", ticket.ID, ticket.UpdatedAt, ticket.Title, ticket.Description, comments)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"summary": summary}})
}
