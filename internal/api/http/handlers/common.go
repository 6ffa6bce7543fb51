package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/atlasboard/tracker-service/pkg/util"
)

// parsePayload decodes the request body into a generic map for schema
// validation. Handlers re-decode into a typed DTO afterwards; both reads are
// from the same buffered body.
func parsePayload(c *fiber.Ctx) (map[string]any, error) {
	payload := map[string]any{}
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON payload", nil)
	}
	return payload, nil
}

// notFoundIfNoRows turns a missing-row error into a 404 naming the entity;
// anything else passes through untouched for the error middleware.
func notFoundIfNoRows(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name+" parameter", nil)
	}
	return id, nil
}
