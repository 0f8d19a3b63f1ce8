package editor

import (
	"testing"
	"time"

	"github.com/retail-admin/backoffice/internal/models"
)

func TestFilter(t *testing.T) {
	admin, manager, operator := seedRoles()
	login := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	manager.LastLogin = &login
	roles := []*models.Role{&admin, &manager, &operator}

	tests := []struct {
		name     string
		q        Query
		expected []string
	}{
		{"no query keeps order", Query{}, []string{"Administrator", "Menejer", "Operator"}},
		{"search name", Query{Search: "men"}, []string{"Menejer"}},
		{"search creator", Query{Search: "SYSTEM"}, []string{"Administrator"}},
		{"status", Query{Status: models.RoleStatusInactive}, []string{"Operator"}},
		{"sort name desc", Query{SortBy: SortName, Desc: true}, []string{"Operator", "Menejer", "Administrator"}},
		{"sort created", Query{SortBy: SortCreatedAt}, []string{"Administrator", "Menejer", "Operator"}},
		{"sort last login desc", Query{SortBy: SortLastLogin, Desc: true}, []string{"Menejer", "Administrator", "Operator"}},
		{"no match", Query{Search: "kassir"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(roles, tt.q)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d roles, want %d", len(got), len(tt.expected))
			}
			for i, r := range got {
				if r.Name != tt.expected[i] {
					t.Errorf("position %d = %s, want %s", i, r.Name, tt.expected[i])
				}
			}
		})
	}
}

func TestFilterReturnsCopies(t *testing.T) {
	admin, _, _ := seedRoles()
	got := Filter([]*models.Role{&admin}, Query{})
	got[0].Permissions["dashboard"] = got[0].Permissions["chat"]
	if !admin.Permissions["dashboard"].View {
		t.Error("Filter leaked the role's permissions map")
	}
}
