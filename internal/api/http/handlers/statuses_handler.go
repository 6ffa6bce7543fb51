package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/atlasboard/tracker-service/internal/api/dto"
	"github.com/atlasboard/tracker-service/internal/domain"
	"github.com/atlasboard/tracker-service/internal/repository"
	"github.com/atlasboard/tracker-service/internal/validation"
	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// StatusesHandler manages the shared workflow status lookup table.
type StatusesHandler struct {
	statuses repository.StatusRepository
}

// NewStatusesHandler constructs handler.
func NewStatusesHandler(statuses repository.StatusRepository) *StatusesHandler {
	return &StatusesHandler{statuses: statuses}
}

// List handles GET /status.
func (h *StatusesHandler) List(c *fiber.Ctx) error {
	statuses, err := h.statuses.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusResponses(statuses)})
}

// Create handles POST /status.
func (h *StatusesHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.StatusCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	if existing, err := h.statuses.GetByName(ctx, req.Name); err != nil {
		return err
	} else if existing != nil {
		return apperrors.NewConflict("status already exists", map[string]any{"name": req.Name})
	}

	status := &domain.Status{Name: req.Name}
	if err := h.statuses.Create(ctx, status); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.NewConflict("status already exists", map[string]any{"name": req.Name})
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStatusResponse(status)})
}

// Delete handles DELETE /status/:id.
func (h *StatusesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.statuses.Delete(c.UserContext(), id); err != nil {
		return notFoundIfNoRows(err, "status")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
