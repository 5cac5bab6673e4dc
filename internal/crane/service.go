package crane

import (
	"context"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	craneDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/crane"
	"github.com/silcast/crane-admin/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*craneDatamodel.Crane, error)
	// GetByID returns nil, nil when no row matches. Operador, ayudante and cliente are loaded.
	GetByID(ctx context.Context, id int64) (*craneDatamodel.Crane, error)
	UnidadTaken(ctx context.Context, unidad string, exceptID int64) (bool, error)
	Create(ctx context.Context, c *craneDatamodel.Crane) error
	Update(ctx context.Context, c *craneDatamodel.Crane) error
	// Delete removes the crane together with its movements and service reports.
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	refs   reference.Checker
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, refs reference.Checker, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		refs:   refs,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Crane, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list cranes", err)
	}
	cranes := make([]*Crane, 0, len(rows))
	for _, row := range rows {
		cranes = append(cranes, FromDataModel(row))
	}
	return cranes, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Crane, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) get(ctx context.Context, id int64) (*craneDatamodel.Crane, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get crane", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Grúa")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, dto CraneDTO) (c *Crane, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(c), events.ActionCreate, err) }()

	if err := s.validate(ctx, &dto, 0); err != nil {
		return nil, err
	}

	row := &craneDatamodel.Crane{}
	dto.apply(row)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create crane", err)
	}

	s.logger.InfoContext(ctx, "crane created", "crane_id", row.ID, "unidad", row.Unidad)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto CraneDTO) (c *Crane, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &dto, id); err != nil {
		return nil, err
	}

	dto.apply(row)
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to update crane", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete crane", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, dto *CraneDTO, exceptID int64) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)

	if dto.Unidad != "" {
		taken, err := s.repo.UnidadTaken(ctx, dto.Unidad, exceptID)
		if err != nil {
			return internal.NewInternalError("failed to check crane unidad", err)
		}
		if taken {
			v.Taken("unidad")
		}
	}

	refs := []struct {
		field, table string
		id           *int64
	}{
		{"operador_id", reference.Employees, dto.OperadorID},
		{"ayudante_id", reference.Employees, dto.AyudanteID},
		{"cliente_actual_id", reference.Clients, dto.ClienteActualID},
	}
	for _, ref := range refs {
		if err := reference.Require(ctx, s.refs, v, ref.field, ref.table, ref.id); err != nil {
			return internal.NewInternalError("failed to check crane references", err)
		}
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func idOf(c *Crane) int64 {
	if c == nil {
		return 0
	}
	return c.ID
}
