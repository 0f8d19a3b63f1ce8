package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/editor"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/middleware"
	"github.com/retail-admin/backoffice/internal/models"
	"go.uber.org/zap"
)

type AuditReader interface {
	GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error)
}

type RoleHandler struct {
	sessions *editor.Sessions
	audit    AuditReader
	log      *zap.Logger
}

func NewRoleHandler(sessions *editor.Sessions, audit AuditReader, log *zap.Logger) *RoleHandler {
	return &RoleHandler{sessions: sessions, audit: audit, log: log}
}

// List serves the admin's loaded role list, loading it on first use.
// Query: q, status, sort (name|created_at|last_login), desc.
func (h *RoleHandler) List(c *fiber.Ctx) error {
	q := editor.Query{
		Search: c.Query("q"),
		SortBy: c.Query("sort"),
		Desc:   c.QueryBool("desc"),
	}
	if s := c.Query("status"); s != "" {
		status, err := models.ParseRoleStatus(s)
		if err != nil {
			return badRequest(c, err.Error())
		}
		q.Status = status
	}
	switch q.SortBy {
	case "", editor.SortName, editor.SortCreatedAt, editor.SortLastLogin:
	default:
		return badRequest(c, "sort must be one of: name created_at last_login")
	}

	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.EnsureLoaded(c.UserContext()); err != nil {
		return respondError(c, err, h.log)
	}

	roles := sess.Editor.Roles(q)
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.RoleListResponse{Roles: roles, Total: len(roles)}})
}

func (h *RoleHandler) Reload(c *fiber.Ctx) error {
	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.Load(c.UserContext()); err != nil {
		return respondError(c, err, h.log)
	}
	roles := sess.Editor.Roles(editor.Query{})
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.RoleListResponse{Roles: roles, Total: len(roles)}})
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid role id")
	}

	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.EnsureLoaded(c.UserContext()); err != nil {
		return respondError(c, err, h.log)
	}
	if err := sess.Editor.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, h.log)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.MutationResponse{Toasts: sess.Toasts.List()}})
}

// History lists the audit trail of one role, newest first.
func (h *RoleHandler) History(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid role id")
	}
	if h.audit == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "history unavailable", RequestID: middleware.GetRequestID(c)})
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := h.audit.GetByEntity(c.UserContext(), models.EntityRole, id, limit, c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err, h.log)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
