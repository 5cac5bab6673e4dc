package supplier

import (
	"context"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	supplierDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/supplier"
	"github.com/silcast/crane-admin/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*supplierDatamodel.Supplier, error)
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id int64) (*supplierDatamodel.Supplier, error)
	NameTaken(ctx context.Context, nombre string, exceptID int64) (bool, error)
	Create(ctx context.Context, s *supplierDatamodel.Supplier) error
	Update(ctx context.Context, s *supplierDatamodel.Supplier) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list suppliers", err)
	}
	suppliers := make([]*Supplier, 0, len(rows))
	for _, row := range rows {
		suppliers = append(suppliers, FromDataModel(row))
	}
	return suppliers, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get supplier", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Proveedor")
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto SupplierDTO) (sup *Supplier, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(sup), events.ActionCreate, err) }()

	if err := s.validate(ctx, &dto, 0); err != nil {
		return nil, err
	}

	sup = &Supplier{}
	dto.apply(sup)
	row := ToDataModel(sup)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create supplier", err)
	}

	s.logger.InfoContext(ctx, "supplier created", "supplier_id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto SupplierDTO) (sup *Supplier, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	sup, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &dto, id); err != nil {
		return nil, err
	}

	dto.apply(sup)
	row := ToDataModel(sup)
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to update supplier", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete supplier", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, dto *SupplierDTO, exceptID int64) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)

	if dto.Nombre != "" {
		taken, err := s.repo.NameTaken(ctx, dto.Nombre, exceptID)
		if err != nil {
			return internal.NewInternalError("failed to check supplier name", err)
		}
		if taken {
			v.Taken("nombre")
		}
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func idOf(s *Supplier) int64 {
	if s == nil {
		return 0
	}
	return s.ID
}
