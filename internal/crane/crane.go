package crane

import (
	"time"

	"github.com/silcast/crane-admin/internal/client"
	craneDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/crane"
	"github.com/silcast/crane-admin/internal/employee"
)

const EntityName = "crane"

const (
	EstadoDisponible      = "disponible"
	EstadoEnServicio      = "en_servicio"
	EstadoMantenimiento   = "mantenimiento"
	EstadoFueraDeServicio = "fuera_de_servicio"
)

type Crane struct {
	ID                     int64             `json:"id"`
	Unidad                 string            `json:"unidad"`
	Tipo                   string            `json:"tipo"`
	Combustible            string            `json:"combustible"`
	CapacidadToneladas     float64           `json:"capacidad_toneladas"`
	PlumaTelescopicaMetros *float64          `json:"pluma_telescopica_metros"`
	Documentacion          *string           `json:"documentacion"`
	OperadorID             *int64            `json:"operador_id"`
	AyudanteID             *int64            `json:"ayudante_id"`
	ClienteActualID        *int64            `json:"cliente_actual_id"`
	PrecioHora             *float64          `json:"precio_hora"`
	Estado                 string            `json:"estado"`
	Operador               *employee.Summary `json:"operador"`
	Ayudante               *employee.Summary `json:"ayudante"`
	ClienteActual          *client.Client    `json:"cliente_actual"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// Summary is the shape embedded when another record points at a crane.
type Summary struct {
	ID     int64  `json:"id"`
	Unidad string `json:"unidad"`
	Tipo   string `json:"tipo"`
}

func SummaryFromDataModel(c *craneDatamodel.Crane) *Summary {
	if c == nil {
		return nil
	}
	return &Summary{ID: c.ID, Unidad: c.Unidad, Tipo: c.Tipo}
}

func FromDataModel(c *craneDatamodel.Crane) *Crane {
	out := &Crane{
		ID:                     c.ID,
		Unidad:                 c.Unidad,
		Tipo:                   c.Tipo,
		Combustible:            c.Combustible,
		CapacidadToneladas:     c.CapacidadToneladas,
		PlumaTelescopicaMetros: c.PlumaTelescopicaMetros,
		Documentacion:          c.Documentacion,
		OperadorID:             c.OperadorID,
		AyudanteID:             c.AyudanteID,
		ClienteActualID:        c.ClienteActualID,
		PrecioHora:             c.PrecioHora,
		Estado:                 c.Estado,
		Operador:               employee.SummaryFromDataModel(c.Operador),
		Ayudante:               employee.SummaryFromDataModel(c.Ayudante),
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
	if c.ClienteActual != nil {
		out.ClienteActual = client.FromDataModel(c.ClienteActual)
	}
	return out
}
