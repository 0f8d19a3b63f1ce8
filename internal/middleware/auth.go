package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/auth"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/models"
	"go.uber.org/zap"
)

const CtxActor = "actor"

// AuthMiddleware identifies the admin behind a bearer token. It does not
// check what the admin may do.
func AuthMiddleware(jwtSecret string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "missing authorization header", RequestID: GetRequestID(c)})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid authorization format", RequestID: GetRequestID(c)})
		}

		claims, err := auth.ParseJWT(jwtSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid or expired token", RequestID: GetRequestID(c)})
		}

		c.Locals(CtxActor, models.Actor{ID: claims.AdminID, Login: claims.Login})
		return c.Next()
	}
}

func GetActor(c *fiber.Ctx) models.Actor {
	actor, _ := c.Locals(CtxActor).(models.Actor)
	return actor
}
