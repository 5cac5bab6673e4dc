package access

import (
	"context"
	"log/slog"
	"time"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	accessDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/access"
	"github.com/silcast/crane-admin/internal/core/events"
)

type RepositoryAPI interface {
	// List returns records newest first; a non-nil empleadoID restricts them to one employee.
	List(ctx context.Context, empleadoID *int64) ([]*accessDatamodel.Access, error)
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id int64) (*accessDatamodel.Access, error)
	Create(ctx context.Context, a *accessDatamodel.Access) error
	Update(ctx context.Context, a *accessDatamodel.Access) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo     RepositoryAPI
	refs     reference.Checker
	events   events.Publisher
	logger   *slog.Logger
	location *time.Location
}

func NewService(repo RepositoryAPI, refs reference.Checker, publisher events.Publisher, logger *slog.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		refs:     refs,
		events:   publisher,
		logger:   logger,
		location: loc,
	}
}

func (s *Service) List(ctx context.Context, empleadoID *int64) ([]*Access, error) {
	rows, err := s.repo.List(ctx, empleadoID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list accesses", err)
	}
	accesses := make([]*Access, 0, len(rows))
	for _, row := range rows {
		accesses = append(accesses, FromDataModel(row, s.location))
	}
	return accesses, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Access, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row, s.location), nil
}

func (s *Service) get(ctx context.Context, id int64) (*accessDatamodel.Access, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get access", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Acceso")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, dto AccessDTO) (a *Access, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(a), events.ActionCreate, err) }()

	if err := s.validate(ctx, &dto); err != nil {
		return nil, err
	}

	row := &accessDatamodel.Access{}
	dto.apply(row, s.location)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create access", err)
	}

	s.logger.InfoContext(ctx, "access recorded", "access_id", row.ID, "empleado_id", row.EmpleadoID)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto AccessDTO) (a *Access, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &dto); err != nil {
		return nil, err
	}

	dto.apply(row, s.location)
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to update access", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete access", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, dto *AccessDTO) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v, s.location)

	if err := reference.Require(ctx, s.refs, v, "empleado_id", reference.Employees, dto.EmpleadoID); err != nil {
		return internal.NewInternalError("failed to check employee", err)
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func idOf(a *Access) int64 {
	if a == nil {
		return 0
	}
	return a.ID
}
