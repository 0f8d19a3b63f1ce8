package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/rbac"
)

// Role statuses
const (
	RoleStatusActive   RoleStatus = "active"
	RoleStatusInactive RoleStatus = "inactive"
)

type RoleStatus string

var ErrInvalidStatus = errors.New("invalid role status")

func ParseRoleStatus(s string) (RoleStatus, error) {
	switch RoleStatus(s) {
	case RoleStatusActive, RoleStatusInactive:
		return RoleStatus(s), nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidStatus, s)
}

type Role struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Status        RoleStatus  `json:"status"`
	Creator       string      `json:"creator"`
	AssignedUsers []string    `json:"assigned_users"`
	Permissions   rbac.Matrix `json:"permissions"`
	LastLogin     *time.Time  `json:"last_login,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Clone returns a copy that shares no maps or slices with r.
func (r *Role) Clone() *Role {
	c := *r
	c.Permissions = rbac.Clone(r.Permissions)
	if r.AssignedUsers != nil {
		c.AssignedUsers = append([]string(nil), r.AssignedUsers...)
	}
	if r.LastLogin != nil {
		t := *r.LastLogin
		c.LastLogin = &t
	}
	return &c
}
