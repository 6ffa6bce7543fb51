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

// TeamsHandler manages team CRUD endpoints.
type TeamsHandler struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teams repository.TeamRepository, users repository.UserRepository) *TeamsHandler {
	return &TeamsHandler{teams: teams, users: users}
}

// Create handles POST /teams. The slug is derived from the name once and
// never changes afterwards.
func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.TeamCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateTeamRequest
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
	if _, err := h.teams.GetBySlug(ctx, slug); err == nil {
		return apperrors.NewConflict("team already exists", map[string]any{"slug": slug})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	// Resolve member usernames before any write so a bad list fails whole.
	memberIDs := make([]string, 0, len(req.Members))
	for _, username := range req.Members {
		member, err := h.users.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("unknown member username", map[string]any{"username": username})
			}
			return err
		}
		memberIDs = append(memberIDs, member.ID)
	}

	team := &domain.Team{Slug: slug, Name: req.Name, CreatorID: claims.UserID}
	if err := h.teams.Create(ctx, team); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.NewConflict("team already exists", map[string]any{"slug": slug})
		}
		return err
	}

	for _, memberID := range memberIDs {
		if err := h.teams.AddMember(ctx, slug, memberID); err != nil {
			return err
		}
	}

	members, err := h.teams.ListMembers(ctx, slug)
	if err != nil {
		return err
	}
	team.Members = members

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// List handles GET /teams.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	teams, err := h.teams.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTeamResponses(teams)})
}

// Get handles GET /teams/:slug with members attached.
func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	team, err := h.teams.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return notFoundIfNoRows(err, "team")
	}
	members, err := h.teams.ListMembers(ctx, team.Slug)
	if err != nil {
		return err
	}
	team.Members = members
	return c.JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// Update handles PATCH /teams/:slug. The slug itself is immutable; a renamed
// team keeps its identifier.
func (h *TeamsHandler) Update(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.TeamUpdate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	team, err := h.teams.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return notFoundIfNoRows(err, "team")
	}

	if req.Name != nil {
		team.Name = *req.Name
		if err := h.teams.Update(ctx, team); err != nil {
			return notFoundIfNoRows(err, "team")
		}
	}

	for _, username := range req.Members {
		member, err := h.users.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("unknown member username", map[string]any{"username": username})
			}
			return err
		}
		if err := h.teams.AddMember(ctx, team.Slug, member.ID); err != nil {
			return err
		}
	}

	members, err := h.teams.ListMembers(ctx, team.Slug)
	if err != nil {
		return err
	}
	team.Members = members

	return c.JSON(fiber.Map{"data": dto.NewTeamResponse(team)})
}

// RemoveMember handles DELETE /teams/:slug/members/:username.
func (h *TeamsHandler) RemoveMember(c *fiber.Ctx) error {
	ctx := c.UserContext()
	team, err := h.teams.GetBySlug(ctx, c.Params("slug"))
	if err != nil {
		return notFoundIfNoRows(err, "team")
	}
	member, err := h.users.GetByUsername(ctx, c.Params("username"))
	if err != nil {
		return notFoundIfNoRows(err, "user")
	}
	if err := h.teams.RemoveMember(ctx, team.Slug, member.ID); err != nil {
		return notFoundIfNoRows(err, "team member")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"removed": true}})
}

// Delete handles DELETE /teams/:slug.
func (h *TeamsHandler) Delete(c *fiber.Ctx) error {
	if err := h.teams.Delete(c.UserContext(), c.Params("slug")); err != nil {
		return notFoundIfNoRows(err, "team")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
