package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/auth"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*userDatamodel.User, error)
	// GetByID returns nil, nil when no row matches. Roles and their permissions are loaded.
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	// EmpleadoLinked reports whether a user other than exceptID is linked to the employee.
	EmpleadoLinked(ctx context.Context, empleadoID, exceptID int64) (bool, error)
	RolesByName(ctx context.Context, names []string) ([]userDatamodel.Role, error)
	ListRoles(ctx context.Context) ([]*userDatamodel.Role, error)
	// Save inserts or updates u; roles are replaced when syncRoles is set.
	Save(ctx context.Context, u *userDatamodel.User, roles []userDatamodel.Role, syncRoles bool) error
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

func (s *Service) List(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) get(ctx context.Context, id int64) (*userDatamodel.User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Usuario")
	}
	return row, nil
}

func (s *Service) Roles(ctx context.Context) ([]*Role, error) {
	rows, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list roles", err)
	}
	roles := make([]*Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, RoleFromDataModel(row))
	}
	return roles, nil
}

func (s *Service) Create(ctx context.Context, dto UserDTO) (u *User, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(u), events.ActionCreate, err) }()

	roles, err := s.validate(ctx, &dto, 0)
	if err != nil {
		return nil, err
	}

	row := &userDatamodel.User{}
	if err := s.apply(&dto, row); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, row, roles, dto.Roles != nil); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", row.ID)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto UserDTO) (u *User, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.validate(ctx, &dto, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(&dto, row); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, row, roles, dto.Roles != nil); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the login only; the linked employee is kept.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, dto *UserDTO, selfID int64) ([]userDatamodel.Role, error) {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v, selfID == 0)

	if dto.Email != "" {
		taken, err := s.repo.EmailTaken(ctx, dto.Email, selfID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check user email", err)
		}
		if taken {
			v.Taken("email")
		}
	}
	if err := reference.Require(ctx, s.refs, v, "empleado_id", reference.Employees, dto.EmpleadoID); err != nil {
		return nil, internal.NewInternalError("failed to check employee", err)
	}
	if dto.EmpleadoID != nil {
		linked, err := s.repo.EmpleadoLinked(ctx, *dto.EmpleadoID, selfID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check employee link", err)
		}
		if linked {
			v.AddError("empleado_id", "the employee already has a user account", internal.ErrCodeAlreadyTaken)
		}
	}

	var roles []userDatamodel.Role
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
	return roles, nil
}

func (s *Service) apply(dto *UserDTO, row *userDatamodel.User) error {
	row.Email = dto.Email
	row.EmpleadoID = dto.EmpleadoID
	if dto.Password != nil {
		hash, err := s.hasher.Hash(*dto.Password)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}
		row.Password = hash
	}
	return nil
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

func idOf(u *User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
