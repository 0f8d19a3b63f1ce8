package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/events"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/repositories"
	"go.uber.org/zap"
)

type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f repositories.RoleFilter) ([]models.Role, error)
}

type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

// RoleService is the persistence side of the role editor: every write is
// audited and announced on the roles stream.
type RoleService struct {
	pageSize  int
	roleRepo  RoleRepository
	auditRepo AuditLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewRoleService(
	roleRepo RoleRepository,
	auditRepo AuditLogger,
	publisher events.Publisher,
	log *zap.Logger,
) *RoleService {
	return &RoleService{
		pageSize:  rolePageSize,
		roleRepo:  roleRepo,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       log,
	}
}

// rolePageSize matches the repository's per-query cap.
const rolePageSize = 500

// List returns every role, reading the table page by page.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	var all []models.Role
	for offset := 0; ; offset += s.pageSize {
		page, err := s.roleRepo.List(ctx, repositories.RoleFilter{Limit: s.pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < s.pageSize {
			return all, nil
		}
	}
}

func (s *RoleService) Create(ctx context.Context, actor models.Actor, role *models.Role) error {
	if role.Creator == "" {
		role.Creator = actor.Login
	}
	if role.Status == "" {
		role.Status = models.RoleStatusActive
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return err
	}

	s.record(ctx, actor, models.AuditRoleCreated, events.EventRoleCreated, role.ID, map[string]any{
		"name":        role.Name,
		"permissions": role.Permissions,
	})
	return nil
}

func (s *RoleService) Update(ctx context.Context, actor models.Actor, role *models.Role) error {
	existing, err := s.roleRepo.GetByID(ctx, role.ID)
	if err != nil {
		return err
	}
	role.Creator = existing.Creator
	role.CreatedAt = existing.CreatedAt
	role.LastLogin = existing.LastLogin

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return err
	}

	s.record(ctx, actor, models.AuditRoleUpdated, events.EventRoleUpdated, role.ID, map[string]any{
		"name":            role.Name,
		"status":          role.Status,
		"old_permissions": existing.Permissions,
		"permissions":     role.Permissions,
	})
	return nil
}

func (s *RoleService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	existing, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor, models.AuditRoleDeleted, events.EventRoleDeleted, id, map[string]any{
		"name": existing.Name,
	})
	return nil
}

// record writes the audit row and publishes the event. Both are best-effort:
// the role write already succeeded.
func (s *RoleService) record(ctx context.Context, actor models.Actor, action, eventType string, roleID uuid.UUID, meta map[string]any) {
	actorID := actor.ID
	if err := s.auditRepo.Log(ctx, models.AuditLog{
		ActorID:    &actorID,
		ActorLogin: actor.Login,
		ActorType:  "admin",
		Action:     action,
		EntityType: models.EntityRole,
		EntityID:   &roleID,
		Meta:       meta,
	}); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}

	payload := map[string]any{
		"role_id": roleID.String(),
		"actor":   actor.Login,
	}
	for k, v := range meta {
		payload[k] = v
	}
	_ = s.publisher.Publish(ctx, events.StreamRoles, events.Event{Type: eventType, Payload: payload})
}
