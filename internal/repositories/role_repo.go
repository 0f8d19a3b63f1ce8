package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/rbac"
)

var ErrNotFound = errors.New("not found")

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

const roleColumns = `id, name, status, creator, assigned_users, permissions, last_login, created_at, updated_at`

func scanRole(row pgx.Row) (*models.Role, error) {
	var (
		r      models.Role
		status string
	)
	if err := row.Scan(&r.ID, &r.Name, &status, &r.Creator, &r.AssignedUsers,
		&r.Permissions, &r.LastLogin, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Status = models.RoleStatus(status)
	if r.Permissions == nil {
		r.Permissions = rbac.Matrix{}
	}
	if r.AssignedUsers == nil {
		r.AssignedUsers = []string{}
	}
	return &r, nil
}

func (r *RoleRepo) Create(ctx context.Context, role *models.Role) error {
	if role.AssignedUsers == nil {
		role.AssignedUsers = []string{}
	}
	if role.Permissions == nil {
		role.Permissions = rbac.Matrix{}
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, status, creator, assigned_users, permissions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, role.Name, string(role.Status), role.Creator, role.AssignedUsers, role.Permissions,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func (r *RoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return role, err
}

// Update overwrites every editable column. No version check is made.
func (r *RoleRepo) Update(ctx context.Context, role *models.Role) error {
	if role.AssignedUsers == nil {
		role.AssignedUsers = []string{}
	}
	err := r.pool.QueryRow(ctx, `
		UPDATE roles SET name = $1, status = $2, assigned_users = $3, permissions = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, role.Name, string(role.Status), role.AssignedUsers, role.Permissions, role.ID,
	).Scan(&role.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *RoleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin stamps last_login on every role assigned to login.
func (r *RoleRepo) TouchLastLogin(ctx context.Context, login string) error {
	_, err := r.pool.Exec(ctx, `UPDATE roles SET last_login = now() WHERE $1 = ANY(assigned_users)`, login)
	return err
}

type RoleFilter struct {
	Status *models.RoleStatus
	Limit  int
	Offset int
}

func (r *RoleRepo) List(ctx context.Context, f RoleFilter) ([]models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*f.Status))
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}
