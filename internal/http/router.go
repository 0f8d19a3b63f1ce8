package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/retail-admin/backoffice/internal/config"
	"github.com/retail-admin/backoffice/internal/http/handlers"
	"github.com/retail-admin/backoffice/internal/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Sections *handlers.SectionsHandler
	Roles    *handlers.RoleHandler
	Editor   *handlers.EditorHandler
	Toasts   *handlers.ToastHandler
	WSHub    *handlers.WSHub
}

// SetupRouter mounts the API. rdb may be nil, which disables rate limiting.
func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Public
	login := api.Group("/auth")
	if rdb != nil {
		login.Use(middleware.RateLimitMiddleware(rdb, 10, time.Minute, log))
	}
	login.Post("/login", h.Auth.Login)

	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret, log))
	if rdb != nil {
		protected.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, log))
	}

	protected.Get("/sections", h.Sections.List)

	// Roles screen. A crash here leaves the other screens serving.
	roles := protected.Group("/roles", middleware.Boundary("roles", log))
	roles.Get("/", h.Roles.List)
	roles.Post("/reload", h.Roles.Reload)
	roles.Delete("/:id", h.Roles.Delete)
	roles.Get("/:id/history", h.Roles.History)

	ed := protected.Group("/editor", middleware.Boundary("role editor", log))
	ed.Get("/", h.Editor.GetState)
	ed.Post("/select/:id", h.Editor.Select)
	ed.Post("/edit", h.Editor.BeginEdit)
	ed.Post("/open/:id", h.Editor.OpenForEdit)
	ed.Patch("/permissions", h.Editor.TogglePermission)
	ed.Patch("/fields", h.Editor.UpdateFields)
	ed.Post("/save", h.Editor.Save)
	ed.Post("/cancel", h.Editor.Cancel)

	ed.Get("/new", h.Editor.GetCreate)
	ed.Post("/new/open", h.Editor.OpenCreate)
	ed.Delete("/new", h.Editor.CloseCreate)
	ed.Put("/new/name", h.Editor.SetNewName)
	ed.Patch("/new/permissions", h.Editor.ToggleNew)
	ed.Post("/new/submit", h.Editor.Submit)

	toasts := protected.Group("/toasts", middleware.Boundary("notifications", log))
	toasts.Get("/", h.Toasts.List)
	toasts.Delete("/:id", h.Toasts.Dismiss)

	// WebSocket
	if h.WSHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws", websocket.New(h.WSHub.HandleWS))
	}
}

// ErrorHandler renders errors that escaped a handler in the API's error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error(), "request_id": middleware.GetRequestID(c)})
}
