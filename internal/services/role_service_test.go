package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/events"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/rbac"
	"github.com/retail-admin/backoffice/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoleRepo struct {
	roles     map[uuid.UUID]models.Role
	updateErr error
	listCalls int
}

func (r *fakeRoleRepo) Create(_ context.Context, role *models.Role) error {
	role.ID = uuid.New()
	role.CreatedAt = time.Now()
	r.roles[role.ID] = *role.Clone()
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return role.Clone(), nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *models.Role) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.roles[role.ID] = *role.Clone()
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) List(_ context.Context, f repositories.RoleFilter) ([]models.Role, error) {
	r.listCalls++
	all := []models.Role{}
	for _, role := range r.roles {
		all = append(all, role)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if f.Offset >= len(all) {
		return []models.Role{}, nil
	}
	end := len(all)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], nil
}

type fakeAudit struct{ entries []models.AuditLog }

func (a *fakeAudit) Log(_ context.Context, entry models.AuditLog) error {
	a.entries = append(a.entries, entry)
	return nil
}

type fakePublisher struct{ events []events.Event }

func (p *fakePublisher) Publish(_ context.Context, stream string, event events.Event) error {
	if stream != events.StreamRoles {
		return errors.New("unexpected stream " + stream)
	}
	p.events = append(p.events, event)
	return nil
}

func newRoleService() (*RoleService, *fakeRoleRepo, *fakeAudit, *fakePublisher) {
	repo := &fakeRoleRepo{roles: map[uuid.UUID]models.Role{}}
	audit := &fakeAudit{}
	pub := &fakePublisher{}
	return NewRoleService(repo, audit, pub, zap.NewNop()), repo, audit, pub
}

var admin = models.Actor{ID: uuid.New(), Login: "admin"}

func TestRoleServiceCreate(t *testing.T) {
	svc, repo, audit, pub := newRoleService()

	role := &models.Role{Name: "Kassir", Permissions: rbac.Matrix{"dashboard": {View: true}}}
	require.NoError(t, svc.Create(context.Background(), admin, role))

	require.NotEqual(t, uuid.Nil, role.ID)
	require.Equal(t, "admin", role.Creator)
	require.Equal(t, models.RoleStatusActive, role.Status)
	require.Contains(t, repo.roles, role.ID)

	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditRoleCreated, audit.entries[0].Action)
	require.Equal(t, role.ID, *audit.entries[0].EntityID)

	require.Len(t, pub.events, 1)
	require.Equal(t, events.EventRoleCreated, pub.events[0].Type)
	require.Equal(t, "Kassir", pub.events[0].Payload["name"])
}

func TestRoleServiceUpdateKeepsImmutableFields(t *testing.T) {
	svc, repo, audit, _ := newRoleService()

	orig := &models.Role{Name: "Operator", Creator: "system", Permissions: rbac.Matrix{"chat": {View: true, Edit: true}}}
	require.NoError(t, svc.Create(context.Background(), admin, orig))

	draft := orig.Clone()
	draft.Creator = "someone else"
	draft.Permissions = rbac.Matrix{"chat": {View: true}}
	require.NoError(t, svc.Update(context.Background(), admin, draft))

	stored := repo.roles[orig.ID]
	require.Equal(t, "system", stored.Creator)
	require.False(t, stored.Permissions["chat"].Edit)
	require.Equal(t, models.AuditRoleUpdated, audit.entries[len(audit.entries)-1].Action)
}

func TestRoleServiceUpdateFailureNotAudited(t *testing.T) {
	svc, repo, audit, pub := newRoleService()

	role := &models.Role{Name: "Operator"}
	require.NoError(t, svc.Create(context.Background(), admin, role))
	repo.updateErr = errors.New("connection reset")

	require.Error(t, svc.Update(context.Background(), admin, role.Clone()))
	require.Len(t, audit.entries, 1)
	require.Len(t, pub.events, 1)
}

func TestRoleServiceDeleteMissing(t *testing.T) {
	svc, _, _, _ := newRoleService()
	err := svc.Delete(context.Background(), admin, uuid.New())
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		event    events.Event
		expected string
	}{
		{events.Event{Type: events.EventRoleCreated, Payload: map[string]any{"actor": "admin", "name": "Kassir"}}, `admin created role "Kassir"`},
		{events.Event{Type: events.EventRoleDeleted, Payload: map[string]any{"actor": "admin", "name": "Kassir"}}, `admin deleted role "Kassir"`},
		{events.Event{Type: "other"}, "Event: other"},
	}
	for _, tt := range tests {
		t.Run(tt.event.Type, func(t *testing.T) {
			if got := describe(tt.event); got != tt.expected {
				t.Errorf("describe() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRoleServiceListReadsEveryPage(t *testing.T) {
	svc, repo, _, _ := newRoleService()
	svc.pageSize = 2
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Create(context.Background(), admin, &models.Role{Name: fmt.Sprintf("Role %d", i)}))
	}

	roles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 5)
	require.Equal(t, 3, repo.listCalls)

	seen := map[uuid.UUID]bool{}
	for _, r := range roles {
		require.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}
