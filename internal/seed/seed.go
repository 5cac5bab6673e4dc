// Package seed installs the permission catalog, the role grants and the
// bootstrap super-admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/silcast/crane-admin/internal/auth"
	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
)

const (
	AdminEmail         = "admin@silcast.com"
	AdminPassword      = "password"
	AdminEmployeeEmail = "super.admin.empleado@silcast.com"
	AdminEmployeeNum   = "0001"
)

type Options struct {
	// Clear drops every role/permission link before the grants are written again.
	Clear         bool
	AdminEmail    string
	AdminPassword string
}

type Result struct {
	Permissions  int
	Roles        int
	AdminCreated bool
}

type Seeder struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
	logger *slog.Logger
}

func NewSeeder(db *gorm.DB, hasher auth.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{db: db, hasher: hasher, logger: logger}
}

// Run is idempotent; grants are re-synced on every run so that permissions
// added to the catalog reach the roles that should hold them.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.AdminEmail == "" {
		opts.AdminEmail = AdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = AdminPassword
	}

	res := &Result{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Clear {
			if err := tx.Exec("DELETE FROM role_permissions").Error; err != nil {
				return fmt.Errorf("clear role permissions: %w", err)
			}
			s.logger.InfoContext(ctx, "role permission links cleared")
		}

		perms, err := seedPermissions(tx)
		if err != nil {
			return err
		}
		res.Permissions = len(perms)

		roles, err := seedRoles(tx, perms)
		if err != nil {
			return err
		}
		res.Roles = len(roles)

		res.AdminCreated, err = s.seedAdmin(tx, opts, roles[auth.RoleSuperAdmin])
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "seed completed",
		"permissions", res.Permissions,
		"roles", res.Roles,
		"admin_created", res.AdminCreated)
	return res, nil
}

func seedPermissions(tx *gorm.DB) (map[string]userDatamodel.Permission, error) {
	out := make(map[string]userDatamodel.Permission)
	for _, name := range auth.Catalog() {
		p := userDatamodel.Permission{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&p).Error; err != nil {
			return nil, fmt.Errorf("seed permission %q: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}

func seedRoles(tx *gorm.DB, perms map[string]userDatamodel.Permission) (map[string]*userDatamodel.Role, error) {
	grants := auth.RoleGrants()
	out := make(map[string]*userDatamodel.Role)
	for _, name := range auth.RoleNames() {
		role := &userDatamodel.Role{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(role).Error; err != nil {
			return nil, fmt.Errorf("seed role %q: %w", name, err)
		}

		granted := make([]userDatamodel.Permission, 0, len(grants[name]))
		for _, pn := range grants[name] {
			granted = append(granted, perms[pn])
		}
		assoc := tx.Model(role).Association("Permissions")
		if len(granted) == 0 {
			if err := assoc.Clear(); err != nil {
				return nil, fmt.Errorf("sync grants of %q: %w", name, err)
			}
		} else if err := assoc.Replace(granted); err != nil {
			return nil, fmt.Errorf("sync grants of %q: %w", name, err)
		}
		out[name] = role
	}
	return out, nil
}

func (s *Seeder) seedAdmin(tx *gorm.DB, opts Options, superAdmin *userDatamodel.Role) (bool, error) {
	emp, err := seedAdminEmployee(tx)
	if err != nil {
		return false, err
	}

	var u userDatamodel.User
	err = tx.Where("email = ?", opts.AdminEmail).First(&u).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := s.hasher.Hash(opts.AdminPassword)
		if err != nil {
			return false, fmt.Errorf("hash admin password: %w", err)
		}
		u = userDatamodel.User{Email: opts.AdminEmail, Password: hash, EmpleadoID: &emp.ID}
		if err := tx.Omit(clause.Associations).Create(&u).Error; err != nil {
			return false, fmt.Errorf("create admin user: %w", err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("find admin user: %w", err)
	}

	var linked int64
	if err := tx.Table("user_roles").
		Where("user_id = ? AND role_id = ?", u.ID, superAdmin.ID).
		Count(&linked).Error; err != nil {
		return false, fmt.Errorf("check admin role: %w", err)
	}
	if linked == 0 {
		if err := tx.Model(&u).Association("Roles").Append(superAdmin); err != nil {
			return false, fmt.Errorf("assign super-admin: %w", err)
		}
	}
	return created, nil
}

func seedAdminEmployee(tx *gorm.DB) (*employeeDatamodel.Employee, error) {
	materno, civil := "User", "Casado"
	emp := &employeeDatamodel.Employee{
		NumeroEmpleado:    AdminEmployeeNum,
		Nombre:            "Super",
		ApellidoPaterno:   "Admin",
		ApellidoMaterno:   &materno,
		FechaNacimiento:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		CorreoElectronico: AdminEmployeeEmail,
		Telefono:          "5551234567",
		FechaIngreso:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Calle:             "Calle Falsa 123",
		Colonia:           "Centro",
		CP:                "00000",
		Municipio:         "Ciudad Ejemplo",
		Puesto:            "Gerente",
		Area:              "Direccion",
		Turno:             "Matutino",
		Estado:            "activo",
		EstadoCivil:       &civil,
	}
	err := tx.Omit(clause.Associations).
		Where("numero_empleado = ?", AdminEmployeeNum).
		FirstOrCreate(emp).Error
	if err != nil {
		return nil, fmt.Errorf("seed admin employee: %w", err)
	}
	return emp, nil
}
