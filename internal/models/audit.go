package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditRoleCreated = "role_created"
	AuditRoleUpdated = "role_updated"
	AuditRoleDeleted = "role_deleted"
)

const EntityRole = "role"

type AuditLog struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	ActorLogin string     `json:"actor_login,omitempty"`
	ActorType  string     `json:"actor_type"` // admin/system
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Meta       any        `json:"meta,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
