package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/editor"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/middleware"
)

type ToastHandler struct {
	sessions *editor.Sessions
}

func NewToastHandler(sessions *editor.Sessions) *ToastHandler {
	return &ToastHandler{sessions: sessions}
}

func (h *ToastHandler) List(c *fiber.Ctx) error {
	sess := h.sessions.Get(middleware.GetActor(c))
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Toasts.List()})
}

// Dismiss removes a toast. Unknown or already expired ids are not an error.
func (h *ToastHandler) Dismiss(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid toast id")
	}
	sess := h.sessions.Get(middleware.GetActor(c))
	removed := sess.Toasts.Dismiss(id)
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"dismissed": removed}})
}
