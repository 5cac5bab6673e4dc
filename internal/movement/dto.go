package movement

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	movementDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/movement"
)

const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"
)

// Input is either an EntryInput or an ExitInput.
type Input interface {
	tipo() string
}

type EntryInput struct {
	FechaHoraEntrada   string
	KilometrajeEntrada *float64
	CombustibleEntrada *float64
}

func (EntryInput) tipo() string { return TipoEntrada }

type ExitInput struct {
	FechaHoraSalida   string
	Destino           string
	KilometrajeSalida *float64
	CombustibleSalida *float64
}

func (ExitInput) tipo() string { return TipoSalida }

// MovementDTO is the create/update payload. The wire format is flat and keyed by
// tipo_movimiento; Input is nil when the tag is missing or unknown.
type MovementDTO struct {
	TipoMovimiento string
	GruaID         *int64
	OperadorID     *int64
	Descripcion    *string
	Input          Input
}

type movementPayload struct {
	TipoMovimiento     string   `json:"tipo_movimiento"`
	GruaID             *int64   `json:"grua_id"`
	OperadorID         *int64   `json:"operador_id"`
	FechaHoraEntrada   *string  `json:"fecha_hora_entrada"`
	FechaHoraSalida    *string  `json:"fecha_hora_salida"`
	Destino            *string  `json:"destino"`
	Ubicacion          *string  `json:"ubicacion"`
	KilometrajeEntrada *float64 `json:"kilometraje_entrada"`
	KilometrajeSalida  *float64 `json:"kilometraje_salida"`
	CombustibleEntrada *float64 `json:"combustible_entrada"`
	CombustibleSalida  *float64 `json:"combustible_salida"`
	Descripcion        *string  `json:"descripcion"`
}

func (d *MovementDTO) UnmarshalJSON(data []byte) error {
	var p movementPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = MovementDTO{
		TipoMovimiento: strings.TrimSpace(p.TipoMovimiento),
		GruaID:         p.GruaID,
		OperadorID:     p.OperadorID,
		Descripcion:    p.Descripcion,
	}

	switch d.TipoMovimiento {
	case TipoEntrada:
		d.Input = EntryInput{
			FechaHoraEntrada:   deref(p.FechaHoraEntrada),
			KilometrajeEntrada: p.KilometrajeEntrada,
			CombustibleEntrada: p.CombustibleEntrada,
		}
	case TipoSalida:
		destino := p.Destino
		if destino == nil {
			destino = p.Ubicacion
		}
		d.Input = ExitInput{
			FechaHoraSalida:   deref(p.FechaHoraSalida),
			Destino:           deref(destino),
			KilometrajeSalida: p.KilometrajeSalida,
			CombustibleSalida: p.CombustibleSalida,
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func (d *MovementDTO) Normalize() {
	d.Descripcion = validation.TrimOptional(d.Descripcion)
	if d.OperadorID != nil && *d.OperadorID == 0 {
		d.OperadorID = nil
	}
}

func (d MovementDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("tipo_movimiento", d.TipoMovimiento).Required().OneOf(TipoEntrada, TipoSalida)
	v.Field("grua_id", d.GruaID).Required()
	v.Field("operador_id", d.OperadorID).Required()

	switch in := d.Input.(type) {
	case EntryInput:
		v.Field("fecha_hora_entrada", in.FechaHoraEntrada).Required().DateTime()
		v.Field("kilometraje_entrada", in.KilometrajeEntrada).Required().Min(0)
		v.Field("combustible_entrada", in.CombustibleEntrada).Between(0, 100)
	case ExitInput:
		v.Field("fecha_hora_salida", in.FechaHoraSalida).Required().DateTime()
		v.Field("destino", in.Destino).Required().MaxLength(255)
		v.Field("kilometraje_salida", in.KilometrajeSalida).Required().Min(0)
		v.Field("combustible_salida", in.CombustibleSalida).Between(0, 100)
	}
}

// apply writes the common fields and the fields of the input's branch; the other
// branch is left as stored so an exit can complete an existing entry.
func (d MovementDTO) apply(m *movementDatamodel.Movement, loc *time.Location) {
	m.GruaID = *d.GruaID
	m.OperadorID = d.OperadorID
	m.Descripcion = d.Descripcion

	switch in := d.Input.(type) {
	case EntryInput:
		m.FechaHoraEntrada = parseUTC(in.FechaHoraEntrada, loc)
		m.KilometrajeEntrada = in.KilometrajeEntrada
		m.CombustibleEntrada = in.CombustibleEntrada
	case ExitInput:
		destino := in.Destino
		m.FechaHoraSalida = parseUTC(in.FechaHoraSalida, loc)
		m.Destino = &destino
		m.KilometrajeSalida = in.KilometrajeSalida
		m.CombustibleSalida = in.CombustibleSalida
	}
}

func parseUTC(s string, loc *time.Location) *time.Time {
	t, err := validation.ParseDateTime(s, loc)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// FilterQuery carries the raw filter-by-date query parameters.
type FilterQuery struct {
	StartDate string
	EndDate   string
	GruaID    string
}

func (q FilterQuery) Empty() bool {
	return q.StartDate == "" && q.EndDate == "" && q.GruaID == ""
}
