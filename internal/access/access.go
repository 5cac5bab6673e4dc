package access

import (
	"time"

	accessDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/access"
	"github.com/silcast/crane-admin/internal/employee"
)

const EntityName = "access"

// Access is one clock-in/clock-out record.
type Access struct {
	ID               int64             `json:"id"`
	EmpleadoID       int64             `json:"empleado_id"`
	Entrada          time.Time         `json:"entrada"`
	Salida           *time.Time        `json:"salida"`
	HoraComidaInicio *time.Time        `json:"hora_comida_inicio"`
	HoraComidaFin    *time.Time        `json:"hora_comida_fin"`
	Ubicacion        *string           `json:"ubicacion"`
	Dispositivo      *string           `json:"dispositivo"`
	Empleado         *employee.Summary `json:"empleado"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func FromDataModel(a *accessDatamodel.Access, loc *time.Location) *Access {
	return &Access{
		ID:               a.ID,
		EmpleadoID:       a.EmpleadoID,
		Entrada:          a.Entrada.In(loc),
		Salida:           inLocation(a.Salida, loc),
		HoraComidaInicio: inLocation(a.HoraComidaInicio, loc),
		HoraComidaFin:    inLocation(a.HoraComidaFin, loc),
		Ubicacion:        a.Ubicacion,
		Dispositivo:      a.Dispositivo,
		Empleado:         employee.SummaryFromDataModel(a.Empleado),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(loc)
	return &local
}
