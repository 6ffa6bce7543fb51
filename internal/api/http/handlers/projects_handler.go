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

// ProjectsHandler manages project CRUD endpoints.
type ProjectsHandler struct {
	projects repository.ProjectRepository
	teams    repository.TeamRepository
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects repository.ProjectRepository, teams repository.TeamRepository) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, teams: teams}
}

// requireTeams rejects the request naming the first missing team slug.
func (h *ProjectsHandler) requireTeams(c *fiber.Ctx, slugs []string) error {
	missing, err := h.teams.MissingSlugs(c.UserContext(), slugs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("team does not exist", map[string]any{"slug": missing[0]})
	}
	return nil
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.ProjectCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	slug := domain.Slugify(req.Name)
	if slug == "" {
		return apperrors.NewValidationError("name does not produce a usable slug", nil)
	}

	ctx := c.UserContext()
	if _, err := h.projects.GetBySlug(ctx, slug); err == nil {
		return apperrors.NewConflict("project already exists", map[string]any{"slug": slug})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err := h.requireTeams(c, req.Teams); err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	project := &domain.Project{
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		CreatorID:   claims.UserID,
	}
	if err := h.projects.Create(ctx, project); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.NewConflict("project already exists", map[string]any{"slug": slug})
		}
		return err
	}

	for _, teamSlug := range req.Teams {
		if err := h.projects.AddTeam(ctx, slug, teamSlug); err != nil {
			return err
		}
	}

	teams, err := h.projects.ListTeams(ctx, slug)
	if err != nil {
		return err
	}
	project.Teams = teams

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponses(projects)})
}

// Get handles GET /projects/:slug with teams attached.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	project, err := h.projects.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return notFoundIfNoRows(err, "project")
	}
	teams, err := h.projects.ListTeams(ctx, project.Slug)
	if err != nil {
		return err
	}
	project.Teams = teams
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Update handles PATCH /projects/:slug. Supplied teams are linked in
// addition to existing ones; the slug never changes.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.ProjectUpdate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	project, err := h.projects.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return notFoundIfNoRows(err, "project")
	}

	if err := h.requireTeams(c, req.Teams); err != nil {
		return err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := h.projects.Update(ctx, project); err != nil {
		return notFoundIfNoRows(err, "project")
	}

	for _, teamSlug := range req.Teams {
		if err := h.projects.AddTeam(ctx, project.Slug, teamSlug); err != nil {
			return err
		}
	}

	teams, err := h.projects.ListTeams(ctx, project.Slug)
	if err != nil {
		return err
	}
	project.Teams = teams

	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Delete handles DELETE /projects/:slug.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	if err := h.projects.Delete(c.UserContext(), c.Params("slug")); err != nil {
		return notFoundIfNoRows(err, "project")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
