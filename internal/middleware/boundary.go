package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"go.uber.org/zap"
)

// Boundary isolates a screen's routes: a panic inside them is logged and
// answered with a fallback telling the client to reload that screen.
func Boundary(screen string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("screen crashed",
					zap.String("screen", screen),
					zap.String("request_id", GetRequestID(c)),
					zap.String("panic", fmt.Sprint(r)),
					zap.ByteString("stack", debug.Stack()),
				)
				err = c.Status(fiber.StatusInternalServerError).JSON(dto.FallbackResponse{
					Error:     fmt.Sprintf("%s is unavailable", screen),
					RequestID: GetRequestID(c),
					Fallback:  true,
					Action:    dto.ActionReload,
				})
			}
		}()
		return c.Next()
	}
}
