package servicereport

import (
	"context"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	reportDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/servicereport"
	"github.com/silcast/crane-admin/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*reportDatamodel.Report, error)
	// GetByID returns nil, nil when no row matches. Grua and operador are loaded.
	GetByID(ctx context.Context, id int64) (*reportDatamodel.Report, error)
	FolioTaken(ctx context.Context, folio string, exceptID int64) (bool, error)
	Create(ctx context.Context, r *reportDatamodel.Report) error
	Update(ctx context.Context, r *reportDatamodel.Report) error
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

func (s *Service) List(ctx context.Context) ([]*Report, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list service reports", err)
	}
	reports := make([]*Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, FromDataModel(row))
	}
	return reports, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Report, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) get(ctx context.Context, id int64) (*reportDatamodel.Report, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get service report", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Reporte de servicio")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, dto ReportDTO) (report *Report, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(report), events.ActionCreate, err) }()

	if err := s.validate(ctx, &dto, 0); err != nil {
		return nil, err
	}

	row := &reportDatamodel.Report{}
	dto.apply(row)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create service report", err)
	}

	s.logger.InfoContext(ctx, "service report created", "report_id", row.ID, "folio", row.Folio)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto ReportDTO) (report *Report, err error) {
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
		return nil, internal.NewInternalError("failed to update service report", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete service report", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, dto *ReportDTO, exceptID int64) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)

	if dto.Folio != "" {
		taken, err := s.repo.FolioTaken(ctx, dto.Folio, exceptID)
		if err != nil {
			return internal.NewInternalError("failed to check folio", err)
		}
		if taken {
			v.Taken("folio")
		}
	}

	refs := []struct {
		field, table string
		id           *int64
	}{
		{"grua_id", reference.Cranes, dto.GruaID},
		{"operador_id", reference.Employees, dto.OperadorID},
		{"ayudante_id", reference.Employees, dto.AyudanteID},
		{"cliente_id", reference.Clients, dto.ClienteID},
	}
	for _, ref := range refs {
		if err := reference.Require(ctx, s.refs, v, ref.field, ref.table, ref.id); err != nil {
			return internal.NewInternalError("failed to check service report references", err)
		}
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func idOf(r *Report) int64 {
	if r == nil {
		return 0
	}
	return r.ID
}
