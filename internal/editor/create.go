package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/notify"
	"github.com/retail-admin/backoffice/internal/rbac"
	"go.uber.org/zap"
)

// createDraft is unrelated to any existing role and starts all-denied.
type createDraft struct {
	name        string
	permissions rbac.Matrix
}

func newCreateDraft() *createDraft {
	return &createDraft{permissions: rbac.Matrix{}}
}

// OpenCreate opens the creation panel with a fresh draft. An already open
// panel keeps its draft.
func (e *Editor) OpenCreate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.create == nil {
		e.create = newCreateDraft()
	}
}

func (e *Editor) CloseCreate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return ErrBusy
	}
	e.create = nil
	return nil
}

func (e *Editor) SetNewName(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.createWritable(); err != nil {
		return err
	}
	e.create.name = name
	return nil
}

func (e *Editor) ToggleNew(section string, field rbac.Field, checked bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.createWritable(); err != nil {
		return err
	}
	next, err := rbac.ApplyPatch(e.create.permissions, section, field, checked)
	if err != nil {
		return err
	}
	e.create.permissions = next
	return nil
}

func (e *Editor) createWritable() error {
	if e.create == nil {
		return ErrCreateClosed
	}
	if e.submitting {
		return ErrBusy
	}
	return nil
}

// Submit creates a role from the creation draft. Both outcomes make the same
// store call; addAnother only decides whether the panel stays open with a
// reset draft or closes.
func (e *Editor) Submit(ctx context.Context, addAnother bool) (*models.Role, error) {
	e.mu.Lock()
	if err := e.createWritable(); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	name := strings.TrimSpace(e.create.name)
	if name == "" {
		e.mu.Unlock()
		e.notifier.Show(ErrNameRequired.Error(), notify.KindError)
		return nil, ErrNameRequired
	}
	role := &models.Role{
		Name:          name,
		Status:        models.RoleStatusActive,
		Creator:       e.actor.Login,
		AssignedUsers: []string{},
		Permissions:   rbac.Clone(e.create.permissions),
	}
	e.submitting = true
	e.mu.Unlock()

	err := e.store.Create(ctx, e.actor, role)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.mu.Unlock()
		e.log.Error("create role failed", zap.String("name", name), zap.Error(err))
		e.notifier.Show("failed to create role", notify.KindError)
		return nil, fmt.Errorf("create role: %w", err)
	}
	e.replace(role)
	if addAnother {
		e.create = newCreateDraft()
	} else {
		e.create = nil
	}
	e.mu.Unlock()

	e.notifier.Show(fmt.Sprintf("role %q created", role.Name), notify.KindSuccess)
	return role.Clone(), nil
}

type CreateState struct {
	Open       bool       `json:"open"`
	Name       string     `json:"name"`
	Rows       []rbac.Row `json:"rows"`
	Submitting bool       `json:"submitting"`
}

func (e *Editor) CreateState() CreateState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.create == nil {
		return CreateState{Rows: []rbac.Row{}, Submitting: e.submitting}
	}
	return CreateState{
		Open:       true,
		Name:       e.create.name,
		Rows:       rbac.Rows(e.create.permissions, false),
		Submitting: e.submitting,
	}
}
