package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/editor"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/middleware"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/rbac"
	"github.com/retail-admin/backoffice/internal/validation"
	"go.uber.org/zap"
)

// EditorHandler drives the admin's editor session: the Viewing/Editing
// state of the selected role and the creation panel.
type EditorHandler struct {
	sessions *editor.Sessions
	log      *zap.Logger
}

func NewEditorHandler(sessions *editor.Sessions, log *zap.Logger) *EditorHandler {
	return &EditorHandler{sessions: sessions, log: log}
}

func (h *EditorHandler) session(c *fiber.Ctx) (*editor.Session, error) {
	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.EnsureLoaded(c.UserContext()); err != nil {
		return nil, err
	}
	return sess, nil
}

func (h *EditorHandler) state(c *fiber.Ctx, sess *editor.Session) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Editor.State()})
}

func (h *EditorHandler) withRole(c *fiber.Ctx, fn func(*editor.Editor, uuid.UUID) error) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid role id")
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	if err := fn(sess.Editor, id); err != nil {
		return respondError(c, err, h.log)
	}
	return h.state(c, sess)
}

func (h *EditorHandler) GetState(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	return h.state(c, sess)
}

func (h *EditorHandler) Select(c *fiber.Ctx) error {
	return h.withRole(c, (*editor.Editor).Select)
}

func (h *EditorHandler) OpenForEdit(c *fiber.Ctx) error {
	return h.withRole(c, (*editor.Editor).OpenForEdit)
}

func (h *EditorHandler) BeginEdit(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	if err := sess.Editor.BeginEdit(); err != nil {
		return respondError(c, err, h.log)
	}
	return h.state(c, sess)
}

func (h *EditorHandler) TogglePermission(c *fiber.Ctx) error {
	section, field, checked, err := parseToggle(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	if err := sess.Editor.Toggle(section, field, checked); err != nil {
		return respondError(c, err, h.log)
	}
	return h.state(c, sess)
}

func (h *EditorHandler) UpdateFields(c *fiber.Ctx) error {
	var req dto.UpdateFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	var status *models.RoleStatus
	if req.Status != nil {
		parsed, err := models.ParseRoleStatus(*req.Status)
		if err != nil {
			return respondError(c, err, h.log)
		}
		status = &parsed
	}

	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	if err := sess.Editor.UpdateFields(req.Name, status); err != nil {
		return respondError(c, err, h.log)
	}
	return h.state(c, sess)
}

func (h *EditorHandler) Save(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	role, err := sess.Editor.Save(c.UserContext())
	if err != nil {
		return respondError(c, err, h.log)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.MutationResponse{Data: role, Toasts: sess.Toasts.List()}})
}

func (h *EditorHandler) Cancel(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	if err := sess.Editor.Cancel(); err != nil {
		return respondError(c, err, h.log)
	}
	return h.state(c, sess)
}

// Creation panel

func (h *EditorHandler) GetCreate(c *fiber.Ctx) error {
	sess := h.sessions.Get(middleware.GetActor(c))
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Editor.CreateState()})
}

func (h *EditorHandler) OpenCreate(c *fiber.Ctx) error {
	sess := h.sessions.Get(middleware.GetActor(c))
	sess.Editor.OpenCreate()
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Editor.CreateState()})
}

func (h *EditorHandler) CloseCreate(c *fiber.Ctx) error {
	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.CloseCreate(); err != nil {
		return respondError(c, err, h.log)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Editor.CreateState()})
}

func (h *EditorHandler) SetNewName(c *fiber.Ctx) error {
	var req dto.SetNameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.SetNewName(req.Name); err != nil {
		return respondError(c, err, h.log)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Editor.CreateState()})
}

func (h *EditorHandler) ToggleNew(c *fiber.Ctx) error {
	section, field, checked, err := parseToggle(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	sess := h.sessions.Get(middleware.GetActor(c))
	if err := sess.Editor.ToggleNew(section, field, checked); err != nil {
		return respondError(c, err, h.log)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: sess.Editor.CreateState()})
}

func (h *EditorHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err, h.log)
	}
	role, err := sess.Editor.Submit(c.UserContext(), req.AddAnother)
	if err != nil {
		return respondError(c, err, h.log)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.MutationResponse{Data: role, Toasts: sess.Toasts.List()}})
}

func parseToggle(c *fiber.Ctx) (string, rbac.Field, bool, error) {
	var req dto.TogglePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", false, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return "", "", false, err
	}
	field, err := rbac.ParseField(req.Field)
	if err != nil {
		return "", "", false, err
	}
	return req.Section, field, req.Checked, nil
}
