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

// defaultStatusName is the workflow status assigned when a create payload
// does not name one. It is part of the seed data.
const defaultStatusName = "thinking"

// EpicsHandler manages epic CRUD endpoints and AI summaries.
type EpicsHandler struct {
	epics     repository.EpicRepository
	projects  repository.ProjectRepository
	statuses  repository.StatusRepository
	users     repository.UserRepository
	comments  repository.CommentRepository
	summaries *service.SummaryService
}

// NewEpicsHandler constructs handler.
func NewEpicsHandler(
	epics repository.EpicRepository,
	projects repository.ProjectRepository,
	statuses repository.StatusRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	summaries *service.SummaryService,
) *EpicsHandler {
	return &EpicsHandler{
		epics:     epics,
		projects:  projects,
		statuses:  statuses,
		users:     users,
		comments:  comments,
		summaries: summaries,
	}
}

// resolveStatus maps a workflow status name to its row, rejecting unknown names.
func resolveStatus(c *fiber.Ctx, statuses repository.StatusRepository, name string) (*domain.Status, error) {
	if name == "" {
		name = defaultStatusName
	}
	status, err := statuses.GetByName(c.UserContext(), name)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": name})
	}
	return status, nil
}

// requireAssignee verifies the referenced user exists when an assignee is given.
func requireAssignee(c *fiber.Ctx, users repository.UserRepository, assigneeID *string) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := users.GetByID(c.UserContext(), *assigneeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("assignee does not exist", map[string]any{"assignee_id": *assigneeID})
		}
		return err
	}
	return nil
}

// Create handles POST /epics.
func (h *EpicsHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.EpicCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateEpicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ctx := c.UserContext()
	if _, err := h.projects.GetBySlug(ctx, req.ProjectSlug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("project does not exist", map[string]any{"project_slug": req.ProjectSlug})
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

	epic := &domain.Epic{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		StatusID:    status.ID,
		ProjectSlug: req.ProjectSlug,
		CreatorID:   claims.UserID,
		AssigneeID:  req.AssigneeID,
	}
	if err := h.epics.Create(ctx, epic); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEpicResponse(epic)})
}

// List handles GET /epics.
func (h *EpicsHandler) List(c *fiber.Ctx) error {
	epics, err := h.epics.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEpicResponses(epics)})
}

// ListByProject handles GET /projects/:slug/epics.
func (h *EpicsHandler) ListByProject(c *fiber.Ctx) error {
	ctx := c.UserContext()
	project, err := h.projects.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return notFoundIfNoRows(err, "project")
	}
	epics, err := h.epics.ListByProject(ctx, project.Slug)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEpicResponses(epics)})
}

// Get handles GET /epics/:id.
func (h *EpicsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	epic, err := h.epics.GetByID(c.UserContext(), id)
	if err != nil {
		return notFoundIfNoRows(err, "epic")
	}
	return c.JSON(fiber.Map{"data": dto.NewEpicResponse(epic)})
}

// Update handles PATCH /epics/:id. Only provided fields change; the owning
// project is fixed at creation.
func (h *EpicsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.EpicUpdate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.UpdateEpicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	epic, err := h.epics.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "epic")
	}

	if req.Title != nil {
		epic.Title = *req.Title
	}
	if req.Description != nil {
		epic.Description = *req.Description
	}
	if req.Priority != nil {
		epic.Priority = domain.Priority(*req.Priority)
	}
	if req.Status != nil {
		status, err := resolveStatus(c, h.statuses, *req.Status)
		if err != nil {
			return err
		}
		epic.StatusID = status.ID
	}
	if req.AssigneeID != nil {
		if err := requireAssignee(c, h.users, req.AssigneeID); err != nil {
			return err
		}
		epic.AssigneeID = req.AssigneeID
	}

	if err := h.epics.Update(ctx, epic); err != nil {
		return notFoundIfNoRows(err, "epic")
	}

	return c.JSON(fiber.Map{"data": dto.NewEpicResponse(epic)})
}

// Delete handles DELETE /epics/:id.
func (h *EpicsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.epics.Delete(c.UserContext(), id); err != nil {
		return notFoundIfNoRows(err, "epic")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Summary handles GET /epics/:id/summary.
func (h *EpicsHandler) Summary(c *fiber.Ctx) error {
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

	summary, err := h.summaries.Summarize(ctx, "epic", epic.ID, epic.UpdatedAt, epic.Title, epic.Description, comments)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"summary": summary}})
}
