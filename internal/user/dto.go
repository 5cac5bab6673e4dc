package user

import (
	"strings"

	"github.com/silcast/crane-admin/internal/core/common/validation"
)

// UserDTO is the create/update payload. Roles nil leaves the current roles untouched.
type UserDTO struct {
	Email      string   `json:"email"`
	Password   *string  `json:"password"`
	EmpleadoID *int64   `json:"empleado_id"`
	Roles      []string `json:"roles"`
}

func (d *UserDTO) Normalize() {
	d.Email = strings.TrimSpace(d.Email)
	if d.Password != nil && *d.Password == "" {
		d.Password = nil
	}
	if d.EmpleadoID != nil && *d.EmpleadoID == 0 {
		d.EmpleadoID = nil
	}
}

func (d UserDTO) Rules(v *validation.ValidationBuilder, creating bool) {
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	password := v.Field("password", d.Password)
	if creating {
		password.Required()
	}
	password.MinLength(8)
}
