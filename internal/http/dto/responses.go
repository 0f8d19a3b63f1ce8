package dto

import (
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/notify"
)

// ActionReload asks the client to reload the failed screen.
const ActionReload = "reload"

type AuthResponse struct {
	Token string       `json:"token"`
	Admin models.Actor `json:"admin"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type FallbackResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
	Fallback  bool   `json:"fallback"`
	Action    string `json:"action"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type RoleListResponse struct {
	Roles []models.Role `json:"roles"`
	Total int           `json:"total"`
}

// MutationResponse carries the result of an editor call together with the
// toasts it produced, so clients without a websocket still see them.
type MutationResponse struct {
	Data   any            `json:"data,omitempty"`
	Toasts []notify.Toast `json:"toasts"`
}
