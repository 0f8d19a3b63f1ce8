package editor

import (
	"sort"
	"strings"

	"github.com/retail-admin/backoffice/internal/models"
)

// Sort keys
const (
	SortName      = "name"
	SortCreatedAt = "created_at"
	SortLastLogin = "last_login"
)

type Query struct {
	Search string
	Status models.RoleStatus
	SortBy string
	Desc   bool
}

// Filter returns copies of the roles matching q. Without SortBy the input
// order is kept.
func Filter(roles []*models.Role, q Query) []models.Role {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Role, 0, len(roles))
	for _, r := range roles {
		if q.Status != "" && r.Status != q.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Name), search) &&
			!strings.Contains(strings.ToLower(r.Creator), search) {
			continue
		}
		out = append(out, *r.Clone())
	}

	var less func(a, b *models.Role) bool
	switch q.SortBy {
	case SortName:
		less = func(a, b *models.Role) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortCreatedAt:
		less = func(a, b *models.Role) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortLastLogin:
		// never logged in sorts first
		less = func(a, b *models.Role) bool {
			if a.LastLogin == nil || b.LastLogin == nil {
				return a.LastLogin == nil && b.LastLogin != nil
			}
			return a.LastLogin.Before(*b.LastLogin)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if q.Desc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})
	return out
}
