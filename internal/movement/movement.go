package movement

import (
	"time"

	movementDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/movement"
	"github.com/silcast/crane-admin/internal/crane"
	"github.com/silcast/crane-admin/internal/employee"
)

const EntityName = "crane_movement"

type Movement struct {
	ID                 int64             `json:"id"`
	GruaID             int64             `json:"grua_id"`
	OperadorID         *int64            `json:"operador_id"`
	FechaHoraEntrada   *time.Time        `json:"fecha_hora_entrada"`
	FechaHoraSalida    *time.Time        `json:"fecha_hora_salida"`
	Destino            *string           `json:"destino"`
	KilometrajeEntrada *float64          `json:"kilometraje_entrada"`
	KilometrajeSalida  *float64          `json:"kilometraje_salida"`
	CombustibleEntrada *float64          `json:"combustible_entrada"`
	CombustibleSalida  *float64          `json:"combustible_salida"`
	Descripcion        *string           `json:"descripcion"`
	Grua               *crane.Summary    `json:"grua"`
	Operador           *employee.Summary `json:"operador"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// FromDataModel renders timestamps in loc.
func FromDataModel(m *movementDatamodel.Movement, loc *time.Location) *Movement {
	return &Movement{
		ID:                 m.ID,
		GruaID:             m.GruaID,
		OperadorID:         m.OperadorID,
		FechaHoraEntrada:   inLocation(m.FechaHoraEntrada, loc),
		FechaHoraSalida:    inLocation(m.FechaHoraSalida, loc),
		Destino:            m.Destino,
		KilometrajeEntrada: m.KilometrajeEntrada,
		KilometrajeSalida:  m.KilometrajeSalida,
		CombustibleEntrada: m.CombustibleEntrada,
		CombustibleSalida:  m.CombustibleSalida,
		Descripcion:        m.Descripcion,
		Grua:               crane.SummaryFromDataModel(m.Grua),
		Operador:           employee.SummaryFromDataModel(m.Operador),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(loc)
	return &local
}
