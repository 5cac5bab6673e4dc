package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/auth"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/core/events"
)

// AccountChange describes how the linked login must change when an employee is saved.
// PasswordHash nil keeps the stored password; SyncRoles false leaves roles untouched.
type AccountChange struct {
	Email        string
	PasswordHash *string
	Roles        []userDatamodel.Role
	SyncRoles    bool
}

type RepositoryAPI interface {
	List(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	// GetByID returns nil, nil when no row matches. The linked user and its roles are loaded.
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	NumeroTaken(ctx context.Context, numero string, exceptID int64) (bool, error)
	CorreoTaken(ctx context.Context, correo string, exceptID int64) (bool, error)
	AccountEmailTaken(ctx context.Context, email string, exceptUserID int64) (bool, error)
	RolesByName(ctx context.Context, names []string) ([]userDatamodel.Role, error)
	// Save inserts or updates the employee and applies account in the same transaction.
	Save(ctx context.Context, e *employeeDatamodel.Employee, account *AccountChange) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	refs   reference.Checker
	hasher auth.PasswordHasher
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, refs reference.Checker, hasher auth.PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		refs:   refs,
		hasher: hasher,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	employees := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, FromDataModel(row))
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) get(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Empleado")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, dto EmployeeDTO) (emp *Employee, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(emp), events.ActionCreate, err) }()

	account, err := s.validate(ctx, &dto, 0, nil)
	if err != nil {
		return nil, err
	}

	row := &employeeDatamodel.Employee{}
	dto.apply(row)
	if err := s.repo.Save(ctx, row, account); err != nil {
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.InfoContext(ctx, "employee created", "employee_id", row.ID, "with_account", account != nil)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto EmployeeDTO) (emp *Employee, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	account, err := s.validate(ctx, &dto, id, row.Usuario)
	if err != nil {
		return nil, err
	}

	dto.apply(row)
	if err := s.repo.Save(ctx, row, account); err != nil {
		return nil, internal.NewInternalError("failed to update employee", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the employee; a linked user survives with its employee link cleared.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete employee", err)
	}
	return nil
}

// validate runs the field rules plus every lookup and returns the account change
// to apply, nil when the payload does not touch the login.
func (s *Service) validate(ctx context.Context, dto *EmployeeDTO, selfID int64, current *userDatamodel.User) (*AccountChange, error) {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v, selfID, current != nil)

	if dto.NumeroEmpleado != "" {
		taken, err := s.repo.NumeroTaken(ctx, dto.NumeroEmpleado, selfID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check numero_empleado", err)
		}
		if taken {
			v.Taken("numero_empleado")
		}
	}
	if dto.CorreoElectronico != "" {
		taken, err := s.repo.CorreoTaken(ctx, dto.CorreoElectronico, selfID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check correo_electronico", err)
		}
		if taken {
			v.Taken("correo_electronico")
		}
	}
	if dto.SupervisorID == nil || *dto.SupervisorID != selfID {
		if err := reference.Require(ctx, s.refs, v, "supervisor_id", reference.Employees, dto.SupervisorID); err != nil {
			return nil, internal.NewInternalError("failed to check supervisor", err)
		}
	}

	var roles []userDatamodel.Role
	if dto.Email != nil {
		var exceptUserID int64
		if current != nil {
			exceptUserID = current.ID
		}
		taken, err := s.repo.AccountEmailTaken(ctx, *dto.Email, exceptUserID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check account email", err)
		}
		if taken {
			v.Taken("email")
		}
	}
	if len(dto.Roles) > 0 {
		found, err := s.repo.RolesByName(ctx, dto.Roles)
		if err != nil {
			return nil, internal.NewInternalError("failed to load roles", err)
		}
		if missing := missingRoles(dto.Roles, found); len(missing) > 0 {
			v.AddError("roles", fmt.Sprintf("the selected roles are invalid: %v", missing), internal.ErrCodeUnknownReference)
		}
		roles = found
	}

	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}
	if !dto.ManagesAccount() {
		return nil, nil
	}

	change := &AccountChange{Email: *dto.Email, Roles: roles, SyncRoles: dto.Roles != nil}
	if dto.Password != nil {
		hash, err := s.hasher.Hash(*dto.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		change.PasswordHash = &hash
	}
	return change, nil
}

func missingRoles(names []string, found []userDatamodel.Role) []string {
	known := make(map[string]struct{}, len(found))
	for _, r := range found {
		known[r.Name] = struct{}{}
	}
	missing := make([]string, 0)
	for _, n := range names {
		if _, ok := known[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

func idOf(e *Employee) int64 {
	if e == nil {
		return 0
	}
	return e.ID
}
