package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/auth"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBoundaryRecoversScreenPanic(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	roles := app.Group("/roles", Boundary("roles", zap.NewNop()))
	roles.Get("/", func(c *fiber.Ctx) error { panic("nil map") })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/roles/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body dto.FallbackResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Fallback)
	require.Equal(t, dto.ActionReload, body.Action)
	require.NotEmpty(t, body.RequestID)

	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(AuthMiddleware("secret", zap.NewNop()))
	app.Get("/me", func(c *fiber.Ctx) error { return c.JSON(GetActor(c)) })

	id := uuid.New()
	token, err := auth.GenerateJWT("secret", id, "aziza", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"no bearer prefix", token, fiber.StatusUnauthorized},
		{"bad token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	given := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, given)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, given, resp.Header.Get(HeaderRequestID))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	resp, err = app.Test(req)
	require.NoError(t, err)
	_, err = uuid.Parse(resp.Header.Get(HeaderRequestID))
	require.NoError(t, err, "untrusted request id should be replaced")
}
