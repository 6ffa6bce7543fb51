package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/persistence"
)

func TestHealthHandlerLive(t *testing.T) {
	handler := NewHealthHandler("tracker-service", "1.2.3", &persistence.Postgres{}, &persistence.Redis{})
	app := fiber.New()
	app.Get("/health/live", handler.Live)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "tracker-service", body["service"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestHealthHandlerReadyReportsDownDependencies(t *testing.T) {
	handler := NewHealthHandler("tracker-service", "1.2.3", &persistence.Postgres{}, &persistence.Redis{})
	app := fiber.New()
	app.Get("/health/ready", handler.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody(t, resp)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errBody["code"])

	details := errBody["details"].(map[string]any)
	assert.Contains(t, details, "postgres")
	assert.Contains(t, details, "redis")
	assert.NotEqual(t, "ok", details["postgres"])
}
