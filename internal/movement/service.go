package movement

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/reference"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	movementDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/movement"
	"github.com/silcast/crane-admin/internal/core/events"
)

// Filter narrows a listing. From is inclusive, To exclusive; nil bounds are open.
type Filter struct {
	From   *time.Time
	To     *time.Time
	GruaID *int64
}

type RepositoryAPI interface {
	// List returns movements ordered by fecha_hora_entrada, newest first, with grua and operador loaded.
	List(ctx context.Context, filter Filter) ([]*movementDatamodel.Movement, error)
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id int64) (*movementDatamodel.Movement, error)
	// Create inserts m in a transaction and reloads it with its relations.
	Create(ctx context.Context, m *movementDatamodel.Movement) error
	Update(ctx context.Context, m *movementDatamodel.Movement) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo     RepositoryAPI
	refs     reference.Checker
	events   events.Publisher
	logger   *slog.Logger
	location *time.Location
}

// NewService reads and renders wall-clock values in loc.
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

func (s *Service) List(ctx context.Context) ([]*Movement, error) {
	return s.list(ctx, Filter{})
}

func (s *Service) list(ctx context.Context, filter Filter) ([]*Movement, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal.NewInternalError("failed to list crane movements", err)
	}
	movements := make([]*Movement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, FromDataModel(row, s.location))
	}
	return movements, nil
}

// FilterByDate lists movements whose entry falls within the whole days
// [start_date, end_date], optionally for one crane. No parameters means no filter.
func (s *Service) FilterByDate(ctx context.Context, q FilterQuery) ([]*Movement, error) {
	if q.Empty() {
		return s.list(ctx, Filter{})
	}

	v := validation.NewValidator()
	v.Field("start_date", q.StartDate).Date()
	v.Field("end_date", q.EndDate).Date()
	var gruaID *int64
	if q.GruaID != "" {
		id, err := strconv.ParseInt(q.GruaID, 10, 64)
		if err != nil || id <= 0 {
			v.AddError("grua_id", "grua_id must be an integer", internal.ErrCodeInvalidFormat)
		} else {
			gruaID = &id
		}
	}
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	filter := Filter{GruaID: gruaID}
	if q.StartDate != "" {
		start, _ := validation.ParseDate(q.StartDate, s.location)
		from := start.UTC()
		filter.From = &from
	}
	if q.EndDate != "" {
		end, _ := validation.ParseDate(q.EndDate, s.location)
		to := validation.NextDay(end).UTC()
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, validation.NewValidator().
			AddError("end_date", "end_date must be a date after or equal to start_date", internal.ErrCodeInvalidDate).
			Validate()
	}
	return s.list(ctx, filter)
}

// ByCrane lists the movements of one crane; 404 when the crane does not exist.
func (s *Service) ByCrane(ctx context.Context, gruaID int64) ([]*Movement, error) {
	ok, err := s.refs.Exists(ctx, reference.Cranes, gruaID)
	if err != nil {
		return nil, internal.NewInternalError("failed to check crane", err)
	}
	if !ok {
		return nil, internal.NewResourceNotFound("Grúa")
	}
	return s.list(ctx, Filter{GruaID: &gruaID})
}

func (s *Service) Get(ctx context.Context, id int64) (*Movement, error) {
	row, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row, s.location), nil
}

func (s *Service) get(ctx context.Context, id int64) (*movementDatamodel.Movement, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get crane movement", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Movimiento")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, dto MovementDTO) (m *Movement, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, idOf(m), events.ActionCreate, err) }()

	if err := s.validate(ctx, &dto); err != nil {
		return nil, err
	}

	row := &movementDatamodel.Movement{}
	dto.apply(row, s.location)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create crane movement", err)
	}

	s.logger.InfoContext(ctx, "crane movement recorded",
		"movement_id", row.ID, "grua_id", row.GruaID, "tipo_movimiento", dto.TipoMovimiento)
	return FromDataModel(row, s.location), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto MovementDTO) (m *Movement, err error) {
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
		return nil, internal.NewInternalError("failed to update crane movement", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete crane movement", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, dto *MovementDTO) error {
	dto.Normalize()
	v := validation.NewValidator()
	dto.Rules(v)

	if err := reference.Require(ctx, s.refs, v, "grua_id", reference.Cranes, dto.GruaID); err != nil {
		return internal.NewInternalError("failed to check crane", err)
	}
	if err := reference.Require(ctx, s.refs, v, "operador_id", reference.Employees, dto.OperadorID); err != nil {
		return internal.NewInternalError("failed to check operator", err)
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func idOf(m *Movement) int64 {
	if m == nil {
		return 0
	}
	return m.ID
}
