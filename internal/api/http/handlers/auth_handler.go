package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/atlasboard/tracker-service/internal/api/dto"
	"github.com/atlasboard/tracker-service/internal/service"
	"github.com/atlasboard/tracker-service/internal/validation"
	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}
	if issues := validation.Login.Validate(payload); len(issues) > 0 {
		return apperrors.NewUnprocessable(validation.IssueMaps(issues))
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
