package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/sections"
)

type SectionsHandler struct{}

func NewSectionsHandler() *SectionsHandler {
	return &SectionsHandler{}
}

// List returns the section registry in display order.
func (h *SectionsHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: sections.All()})
}
