package inventory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	inventoryDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/inventory"
	"github.com/silcast/crane-admin/internal/core/events"
)

// ErrInsufficientStock is returned by AddExit when the item holds less than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

type RepositoryAPI interface {
	List(ctx context.Context) ([]*inventoryDatamodel.Item, error)
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id int64) (*inventoryDatamodel.Item, error)
	CodigoTaken(ctx context.Context, codigo string, exceptID int64) (bool, error)
	Create(ctx context.Context, i *inventoryDatamodel.Item) error
	Update(ctx context.Context, i *inventoryDatamodel.Item) error
	Delete(ctx context.Context, id int64) error
	// AddEntry records e and raises the item's stock in one transaction.
	AddEntry(ctx context.Context, e *inventoryDatamodel.Entry) error
	// AddExit records e and lowers the item's stock in one transaction.
	AddExit(ctx context.Context, e *inventoryDatamodel.Exit) error
	Entries(ctx context.Context, itemID int64) ([]*inventoryDatamodel.Entry, error)
	Exits(ctx context.Context, itemID int64) ([]*inventoryDatamodel.Exit, error)
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

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list inventory", err)
	}
	items := make([]*Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromDataModel(row))
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) get(ctx context.Context, id int64) (*inventoryDatamodel.Item, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get inventory item", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Inventario")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, dto ItemDTO) (item *Item, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(item), events.ActionCreate, err) }()

	if err := s.validate(ctx, &dto, 0); err != nil {
		return nil, err
	}

	row := &inventoryDatamodel.Item{}
	dto.apply(row)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create inventory item", err)
	}

	s.logger.InfoContext(ctx, "inventory item created", "inventario_id", row.ID)
	return s.Get(ctx, row.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto ItemDTO) (item *Item, err error) {
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
		return nil, internal.NewInternalError("failed to update inventory item", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete inventory item", err)
	}
	return nil
}

// RecordEntry adds stock to an item.
func (s *Service) RecordEntry(ctx context.Context, id int64, dto StockDTO) (mv *StockMovement, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	if err := validateStock(&dto); err != nil {
		return nil, err
	}

	entry := dto.entry(id)
	if err := s.repo.AddEntry(ctx, entry); err != nil {
		return nil, internal.NewInternalError("failed to record inventory entry", err)
	}
	s.logger.InfoContext(ctx, "inventory entry recorded", "inventario_id", id, "cantidad", entry.Cantidad)
	return EntryFromDataModel(entry), nil
}

// RecordExit takes stock out of an item; asking for more than is held is a validation error.
func (s *Service) RecordExit(ctx context.Context, id int64, dto StockDTO) (mv *StockMovement, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	if err := validateStock(&dto); err != nil {
		return nil, err
	}

	exit := dto.exit(id)
	if err := s.repo.AddExit(ctx, exit); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, validation.NewValidator().
				AddError("cantidad", "cantidad exceeds the available stock", internal.ErrCodeOutOfRange).
				Validate()
		}
		return nil, internal.NewInternalError("failed to record inventory exit", err)
	}
	s.logger.InfoContext(ctx, "inventory exit recorded", "inventario_id", id, "cantidad", exit.Cantidad)
	return ExitFromDataModel(exit), nil
}

func (s *Service) Movements(ctx context.Context, id int64) (*Movements, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.repo.Entries(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to list inventory entries", err)
	}
	exits, err := s.repo.Exits(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to list inventory exits", err)
	}

	out := &Movements{
		Entradas: make([]*StockMovement, 0, len(entries)),
		Salidas:  make([]*StockMovement, 0, len(exits)),
	}
	for _, e := range entries {
		out.Entradas = append(out.Entradas, EntryFromDataModel(e))
	}
	for _, e := range exits {
		out.Salidas = append(out.Salidas, ExitFromDataModel(e))
	}
	return out, nil
}

func (s *Service) validate(ctx context.Context, dto *ItemDTO, exceptID int64) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)

	if dto.Codigo != nil {
		taken, err := s.repo.CodigoTaken(ctx, *dto.Codigo, exceptID)
		if err != nil {
			return internal.NewInternalError("failed to check inventory codigo", err)
		}
		if taken {
			v.Taken("codigo")
		}
	}
	if err := reference.Require(ctx, s.refs, v, "grua_id", reference.Cranes, dto.GruaID); err != nil {
		return internal.NewInternalError("failed to check crane", err)
	}
	if err := reference.Require(ctx, s.refs, v, "proveedor_id", reference.Suppliers, dto.ProveedorID); err != nil {
		return internal.NewInternalError("failed to check supplier", err)
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func validateStock(dto *StockDTO) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func idOf(i *Item) int64 {
	if i == nil {
		return 0
	}
	return i.ID
}
