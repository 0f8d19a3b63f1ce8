package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/auth"
	"github.com/retail-admin/backoffice/internal/config"
	"github.com/retail-admin/backoffice/internal/http/dto"
	"github.com/retail-admin/backoffice/internal/validation"
	"go.uber.org/zap"
)

type LastLoginRecorder interface {
	TouchLastLogin(ctx context.Context, login string) error
}

type AuthHandler struct {
	authn     *auth.Authenticator
	lastLogin LastLoginRecorder
	cfg       *config.Config
	log       *zap.Logger
}

func NewAuthHandler(authn *auth.Authenticator, lastLogin LastLoginRecorder, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authn: authn, lastLogin: lastLogin, cfg: cfg, log: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	actor, err := h.authn.Authenticate(req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.Info("login rejected", zap.String("login", req.Login))
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("authenticate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, actor.ID, actor.Login, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	if h.lastLogin != nil {
		if err := h.lastLogin.TouchLastLogin(c.UserContext(), actor.Login); err != nil {
			h.log.Warn("failed to record last login", zap.String("login", actor.Login), zap.Error(err))
		}
	}

	return c.JSON(dto.AuthResponse{Token: token, Admin: actor})
}
