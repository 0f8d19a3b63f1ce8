package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/editor"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/middleware"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/rbac"
	"github.com/retail-admin/backoffice/internal/repositories"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP codes. Anything unrecognised came
// from the store.
func statusFor(err error) int {
	switch {
	case errors.Is(err, editor.ErrNameRequired),
		errors.Is(err, rbac.ErrUnknownSection),
		errors.Is(err, rbac.ErrUnknownField),
		errors.Is(err, models.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, editor.ErrRoleNotFound),
		errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, editor.ErrBusy),
		errors.Is(err, editor.ErrNoSelection),
		errors.Is(err, editor.ErrNotEditing),
		errors.Is(err, editor.ErrCreateClosed):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadGateway
	}
}

func respondError(c *fiber.Ctx, err error, log *zap.Logger) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, RequestID: middleware.GetRequestID(c)})
}
