package rbac

import (
	"errors"
	"fmt"

	"github.com/retail-admin/backoffice/internal/sections"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownField   = errors.New("unknown permission field")
)

// Permission fields
const (
	FieldView   Field = "view"
	FieldEdit   Field = "edit"
	FieldDelete Field = "delete"
)

type Field string

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldView, FieldEdit, FieldDelete:
		return Field(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

type PermissionSet struct {
	View   bool `json:"view"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

func (p PermissionSet) With(field Field, value bool) PermissionSet {
	switch field {
	case FieldView:
		p.View = value
	case FieldEdit:
		p.Edit = value
	case FieldDelete:
		p.Delete = value
	}
	return p
}

func (p PermissionSet) Value(field Field) bool {
	switch field {
	case FieldView:
		return p.View
	case FieldEdit:
		return p.Edit
	case FieldDelete:
		return p.Delete
	}
	return false
}

// Matrix maps a section key to its permissions. Sections without an entry
// are denied everything.
type Matrix map[string]PermissionSet

// Get returns the permissions of a section, all-false when absent.
func Get(m Matrix, section string) PermissionSet {
	return m[section]
}

// ApplyPatch returns a new matrix where only field of section is set to
// value. m is never modified.
func ApplyPatch(m Matrix, section string, field Field, value bool) (Matrix, error) {
	if !sections.Has(section) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if _, err := ParseField(string(field)); err != nil {
		return nil, err
	}

	next := make(Matrix, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	next[section] = Get(m, section).With(field, value)
	return next, nil
}

func Clone(m Matrix) Matrix {
	if m == nil {
		return Matrix{}
	}
	out := make(Matrix, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal compares two matrices treating missing sections as all-false.
func Equal(a, b Matrix) bool {
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}

type Row struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	View     bool   `json:"view"`
	Edit     bool   `json:"edit"`
	Delete   bool   `json:"delete"`
	ReadOnly bool   `json:"read_only"`
}

// Rows renders one row per registry section, in registry order.
func Rows(m Matrix, readOnly bool) []Row {
	all := sections.All()
	rows := make([]Row, len(all))
	for i, s := range all {
		p := Get(m, s.Key)
		rows[i] = Row{
			Key:      s.Key,
			Name:     s.Name,
			View:     p.View,
			Edit:     p.Edit,
			Delete:   p.Delete,
			ReadOnly: readOnly,
		}
	}
	return rows
}
