package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/atlasboard/tracker-service/internal/api/dto"
	"github.com/atlasboard/tracker-service/internal/auth"
	"github.com/atlasboard/tracker-service/internal/domain"
	"github.com/atlasboard/tracker-service/internal/repository"
	"github.com/atlasboard/tracker-service/internal/validation"
	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// UsersHandler manages user CRUD endpoints.
type UsersHandler struct {
	users repository.UserRepository
	teams repository.TeamRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository, teams repository.TeamRepository) *UsersHandler {
	return &UsersHandler{users: users, teams: teams}
}

// requireTeams rejects the request naming the first missing team slug.
func (h *UsersHandler) requireTeams(c *fiber.Ctx, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}
	missing, err := h.teams.MissingSlugs(c.UserContext(), slugs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("team does not exist", map[string]any{"slug": missing[0]})
	}
	return nil
}

// Create handles POST /users. This endpoint is public: it is how accounts
// come to exist.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.UserCreate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	if taken, err := h.users.EmailTaken(ctx, req.Email, ""); err != nil {
		return err
	} else if taken {
		return apperrors.NewConflict("email already registered", map[string]any{"email": req.Email})
	}
	if taken, err := h.users.UsernameTaken(ctx, req.Username, ""); err != nil {
		return err
	} else if taken {
		return apperrors.NewConflict("username already taken", map[string]any{"username": req.Username})
	}

	if err := h.requireTeams(c, req.Teams); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Position:     req.Position,
	}
	if err := h.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.NewConflict("email or username already taken", nil)
		}
		return err
	}

	for _, teamSlug := range req.Teams {
		if err := h.teams.AddMember(ctx, teamSlug, user.ID); err != nil {
			return err
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFoundIfNoRows(err, "user")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PATCH /users/:id. Only provided fields change.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.UserUpdate.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ctx := c.UserContext()
	user, err := h.users.GetByID(ctx, c.Params("id"))
	if err != nil {
		return notFoundIfNoRows(err, "user")
	}

	if err := h.requireTeams(c, req.Teams); err != nil {
		return err
	}

	if req.Email != nil {
		if taken, err := h.users.EmailTaken(ctx, *req.Email, user.ID); err != nil {
			return err
		} else if taken {
			return apperrors.NewValidationError("email already registered", map[string]any{"email": *req.Email})
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		if taken, err := h.users.UsernameTaken(ctx, *req.Username, user.ID); err != nil {
			return err
		} else if taken {
			return apperrors.NewValidationError("username already taken", map[string]any{"username": *req.Username})
		}
		user.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	if req.Position != nil {
		user.Position = req.Position
	}

	if err := h.users.Update(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.NewValidationError("email or username already taken", nil)
		}
		return notFoundIfNoRows(err, "user")
	}

	for _, teamSlug := range req.Teams {
		if err := h.teams.AddMember(ctx, teamSlug, user.ID); err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return notFoundIfNoRows(err, "user")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
