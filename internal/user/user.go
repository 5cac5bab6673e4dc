package user

import (
	"sort"
	"time"

	"github.com/silcast/crane-admin/internal/auth"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
)

const EntityName = "user"

// User is the API view of a login; the password hash is never exposed.
type User struct {
	ID          int64             `json:"id"`
	Email       string            `json:"email"`
	EmpleadoID  *int64            `json:"empleado_id"`
	Roles       []string          `json:"roles"`
	Permissions []string          `json:"permissions"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Role is a role with the permissions it grants.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func FromDataModel(u *userDatamodel.User) *User {
	roles := make([]auth.Role, 0, len(u.Roles))
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, auth.Role{Name: r.Name, Permissions: permissionNames(r.Permissions)})
		names = append(names, r.Name)
	}
	sort.Strings(names)

	return &User{
		ID:          u.ID,
		Email:       u.Email,
		EmpleadoID:  u.EmpleadoID,
		Roles:       names,
		Permissions: auth.EffectivePermissions(roles),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func RoleFromDataModel(r *userDatamodel.Role) *Role {
	perms := permissionNames(r.Permissions)
	sort.Strings(perms)
	return &Role{ID: r.ID, Name: r.Name, Permissions: perms}
}

func permissionNames(perms []userDatamodel.Permission) []string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return names
}
