// Package editor hosts the role viewer/editor of one admin: the canonical
// role list, the selected role, the edit draft and the creation draft.
//
// The selected role is only replaced after the store accepted the draft.
// A failed save leaves the editor in Editing with the draft intact.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/notify"
	"github.com/retail-admin/backoffice/internal/rbac"
	"go.uber.org/zap"
)

var (
	ErrNoSelection  = errors.New("no role selected")
	ErrNotEditing   = errors.New("role is not being edited")
	ErrNameRequired = errors.New("name required")
	ErrBusy         = errors.New("another request is in progress")
	ErrRoleNotFound = errors.New("role not found")
	ErrCreateClosed = errors.New("role creation is not open")
)

// Store persists roles. Implementations may be slow or fail; the editor
// never assumes a call succeeded before it returns.
type Store interface {
	List(ctx context.Context) ([]models.Role, error)
	Create(ctx context.Context, actor models.Actor, role *models.Role) error
	Update(ctx context.Context, actor models.Actor, role *models.Role) error
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

type Notifier interface {
	Show(message string, kind notify.Kind) notify.Toast
}

// Editor modes
const (
	ModeViewing Mode = "viewing"
	ModeEditing Mode = "editing"
)

type Mode string

type Editor struct {
	store    Store
	notifier Notifier
	actor    models.Actor
	log      *zap.Logger

	mu         sync.Mutex
	loaded     bool
	roles      []*models.Role
	selected   *models.Role
	editing    *models.Role
	create     *createDraft
	submitting bool
}

func New(store Store, notifier Notifier, actor models.Actor, log *zap.Logger) *Editor {
	return &Editor{
		store:    store,
		notifier: notifier,
		actor:    actor,
		log:      log.With(zap.String("actor", actor.Login)),
	}
}

// Load replaces the role list with the store's. The selection survives if
// the selected role still exists. It returns ErrBusy while a save, create or
// delete is in flight, and discards its result if one started meanwhile.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	busy := e.submitting
	e.mu.Unlock()
	if busy {
		return ErrBusy
	}

	roles, err := e.store.List(ctx)
	if err != nil {
		e.log.Error("load roles failed", zap.Error(err))
		e.notifier.Show("failed to load roles", notify.KindError)
		return fmt.Errorf("load roles: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return ErrBusy
	}

	e.roles = make([]*models.Role, len(roles))
	for i := range roles {
		e.roles[i] = roles[i].Clone()
	}
	e.loaded = true

	if e.selected != nil {
		if r := e.find(e.selected.ID); r != nil {
			e.selected = r.Clone()
		} else {
			e.selected = nil
			e.editing = nil
		}
	}
	return nil
}

func (e *Editor) EnsureLoaded(ctx context.Context) error {
	e.mu.Lock()
	loaded := e.loaded
	e.mu.Unlock()
	if loaded {
		return nil
	}
	return e.Load(ctx)
}

func (e *Editor) Roles(q Query) []models.Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Filter(e.roles, q)
}

// Select shows a role read-only. Any edit draft is dropped.
func (e *Editor) Select(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectLocked(id)
}

func (e *Editor) selectLocked(id uuid.UUID) error {
	if e.submitting {
		return ErrBusy
	}
	r := e.find(id)
	if r == nil {
		return ErrRoleNotFound
	}
	e.selected = r.Clone()
	e.editing = nil
	return nil
}

// BeginEdit copies the selected role into a draft. Calling it while a draft
// already exists keeps that draft.
func (e *Editor) BeginEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.beginEditLocked()
}

func (e *Editor) beginEditLocked() error {
	if e.selected == nil {
		return ErrNoSelection
	}
	if e.editing == nil {
		e.editing = e.selected.Clone()
	}
	return nil
}

// OpenForEdit selects a role and starts editing it in one step.
func (e *Editor) OpenForEdit(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.selectLocked(id); err != nil {
		return err
	}
	return e.beginEditLocked()
}

func (e *Editor) Toggle(section string, field rbac.Field, checked bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.draftWritable(); err != nil {
		return err
	}
	next, err := rbac.ApplyPatch(e.editing.Permissions, section, field, checked)
	if err != nil {
		return err
	}
	e.editing.Permissions = next
	return nil
}

func (e *Editor) Rename(name string) error {
	return e.UpdateFields(&name, nil)
}

func (e *Editor) SetStatus(status models.RoleStatus) error {
	return e.UpdateFields(nil, &status)
}

// UpdateFields applies a rename and a status change to the draft in one
// step. Nil arguments leave the field as it is.
func (e *Editor) UpdateFields(name *string, status *models.RoleStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.draftWritable(); err != nil {
		return err
	}
	if name != nil {
		e.editing.Name = *name
	}
	if status != nil {
		e.editing.Status = *status
	}
	return nil
}

// Busy reports whether a save, create or delete is in flight.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

func (e *Editor) draftWritable() error {
	if e.editing == nil {
		return ErrNotEditing
	}
	if e.submitting {
		return ErrBusy
	}
	return nil
}

// Save persists the draft and only then commits it as the selected role.
// Concurrent saves of the same role from two sessions: last writer wins.
func (e *Editor) Save(ctx context.Context) (*models.Role, error) {
	e.mu.Lock()
	if err := e.draftWritable(); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	draft := e.editing.Clone()
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		e.mu.Unlock()
		e.notifier.Show(ErrNameRequired.Error(), notify.KindError)
		return nil, ErrNameRequired
	}
	e.submitting = true
	e.mu.Unlock()

	err := e.store.Update(ctx, e.actor, draft)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.mu.Unlock()
		e.log.Error("save role failed", zap.String("role_id", draft.ID.String()), zap.Error(err))
		e.notifier.Show("failed to save role", notify.KindError)
		return nil, fmt.Errorf("save role: %w", err)
	}
	e.selected = draft
	e.editing = nil
	e.replace(draft)
	out := draft.Clone()
	e.mu.Unlock()

	e.notifier.Show(fmt.Sprintf("role %q saved", out.Name), notify.KindSuccess)
	return out, nil
}

// Cancel drops the draft. The selected role is untouched.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return ErrBusy
	}
	e.editing = nil
	return nil
}

// Delete removes the role from the list before the store call and puts it
// back if the call fails.
func (e *Editor) Delete(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return ErrBusy
	}
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return ErrRoleNotFound
	}
	removed := e.roles[idx]
	e.roles = append(e.roles[:idx:idx], e.roles[idx+1:]...)
	prevSelected, prevEditing := e.selected, e.editing
	if e.selected != nil && e.selected.ID == id {
		e.selected, e.editing = nil, nil
	}
	e.submitting = true
	e.mu.Unlock()

	err := e.store.Delete(ctx, e.actor, id)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		if e.indexOf(id) < 0 {
			if idx > len(e.roles) {
				idx = len(e.roles)
			}
			e.roles = append(e.roles[:idx], append([]*models.Role{removed}, e.roles[idx:]...)...)
		}
		e.selected, e.editing = prevSelected, prevEditing
		e.mu.Unlock()
		e.log.Error("delete role failed", zap.String("role_id", id.String()), zap.Error(err))
		e.notifier.Show("failed to delete role", notify.KindError)
		return fmt.Errorf("delete role: %w", err)
	}
	e.mu.Unlock()

	e.notifier.Show(fmt.Sprintf("role %q deleted", removed.Name), notify.KindSuccess)
	return nil
}

type State struct {
	Mode       Mode         `json:"mode"`
	Selected   *models.Role `json:"selected,omitempty"`
	Editing    *models.Role `json:"editing,omitempty"`
	Rows       []rbac.Row   `json:"rows"`
	Submitting bool         `json:"submitting"`
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{Mode: ModeViewing, Submitting: e.submitting, Rows: []rbac.Row{}}
	if e.selected != nil {
		st.Selected = e.selected.Clone()
		st.Rows = rbac.Rows(e.selected.Permissions, true)
	}
	if e.editing != nil {
		st.Mode = ModeEditing
		st.Editing = e.editing.Clone()
		st.Rows = rbac.Rows(e.editing.Permissions, false)
	}
	return st
}

func (e *Editor) find(id uuid.UUID) *models.Role {
	if i := e.indexOf(id); i >= 0 {
		return e.roles[i]
	}
	return nil
}

func (e *Editor) indexOf(id uuid.UUID) int {
	for i, r := range e.roles {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) replace(r *models.Role) {
	if i := e.indexOf(r.ID); i >= 0 {
		e.roles[i] = r.Clone()
		return
	}
	e.roles = append(e.roles, r.Clone())
}
