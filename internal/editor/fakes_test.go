package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/notify"
	"github.com/retail-admin/backoffice/internal/rbac"
)

var errBackendDown = errors.New("backend down")

type memStore struct {
	mu      sync.Mutex
	roles   []models.Role
	creates int
	updates int
	deletes int

	failList   error
	failCreate error
	failUpdate error
	failDelete error

	// when set, the matching call waits for it to be closed
	updateGate chan struct{}
	createGate chan struct{}
	deleteGate chan struct{}
}

func newMemStore(roles ...models.Role) *memStore {
	return &memStore{roles: roles}
}

func (s *memStore) List(_ context.Context) ([]models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList != nil {
		return nil, s.failList
	}
	out := make([]models.Role, len(s.roles))
	for i := range s.roles {
		out[i] = *s.roles[i].Clone()
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, _ models.Actor, role *models.Role) error {
	if s.createGate != nil {
		<-s.createGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.failCreate != nil {
		return s.failCreate
	}
	role.ID = uuid.New()
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	s.roles = append(s.roles, *role.Clone())
	return nil
}

func (s *memStore) Update(_ context.Context, _ models.Actor, role *models.Role) error {
	if s.updateGate != nil {
		<-s.updateGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.failUpdate != nil {
		return s.failUpdate
	}
	for i := range s.roles {
		if s.roles[i].ID == role.ID {
			role.UpdatedAt = time.Now()
			s.roles[i] = *role.Clone()
			return nil
		}
	}
	return errors.New("not found")
}

func (s *memStore) Delete(_ context.Context, _ models.Actor, id uuid.UUID) error {
	if s.deleteGate != nil {
		<-s.deleteGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.failDelete != nil {
		return s.failDelete
	}
	for i := range s.roles {
		if s.roles[i].ID == id {
			s.roles = append(s.roles[:i], s.roles[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (s *memStore) get(id uuid.UUID) (models.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.roles {
		if r.ID == id {
			return *r.Clone(), true
		}
	}
	return models.Role{}, false
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (n *recordingNotifier) Show(message string, kind notify.Kind) notify.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	t := notify.Toast{ID: uuid.New(), Message: message, Kind: kind}
	n.toasts = append(n.toasts, t)
	return t
}

func (n *recordingNotifier) all() []notify.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Toast(nil), n.toasts...)
}

func (n *recordingNotifier) last() notify.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return notify.Toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

var testActor = models.Actor{ID: uuid.New(), Login: "admin"}

func seedRoles() (admin, manager, operator models.Role) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	admin = models.Role{
		ID:            uuid.New(),
		Name:          "Administrator",
		Status:        models.RoleStatusActive,
		Creator:       "system",
		AssignedUsers: []string{"root"},
		Permissions: rbac.Matrix{
			"dashboard": {View: true, Edit: true, Delete: true},
			"rollar":    {View: true, Edit: true, Delete: true},
		},
		CreatedAt: created,
	}
	manager = models.Role{
		ID:            uuid.New(),
		Name:          "Menejer",
		Status:        models.RoleStatusActive,
		Creator:       "admin",
		AssignedUsers: []string{"dilshod", "malika"},
		Permissions: rbac.Matrix{
			"dashboard":   {View: true},
			"buyurtmalar": {View: true, Edit: true},
		},
		CreatedAt: created.Add(24 * time.Hour),
	}
	operator = models.Role{
		ID:            uuid.New(),
		Name:          "Operator",
		Status:        models.RoleStatusInactive,
		Creator:       "admin",
		AssignedUsers: []string{"jasur"},
		Permissions: rbac.Matrix{
			"chat":     {View: true, Edit: true},
			"mijozlar": {View: true},
		},
		CreatedAt: created.Add(48 * time.Hour),
	}
	return admin, manager, operator
}
