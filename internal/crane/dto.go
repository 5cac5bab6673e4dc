package crane

import (
	"strings"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	craneDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/crane"
)

// CraneDTO is the create/update payload.
type CraneDTO struct {
	Unidad                 string   `json:"unidad"`
	Tipo                   string   `json:"tipo"`
	Combustible            string   `json:"combustible"`
	CapacidadToneladas     *float64 `json:"capacidad_toneladas"`
	PlumaTelescopicaMetros *float64 `json:"pluma_telescopica_metros"`
	Documentacion          *string  `json:"documentacion"`
	OperadorID             *int64   `json:"operador_id"`
	AyudanteID             *int64   `json:"ayudante_id"`
	ClienteActualID        *int64   `json:"cliente_actual_id"`
	PrecioHora             *float64 `json:"precio_hora"`
	Estado                 string   `json:"estado"`
}

func (d *CraneDTO) Normalize() {
	d.Unidad = strings.TrimSpace(d.Unidad)
	d.Tipo = strings.TrimSpace(d.Tipo)
	d.Combustible = strings.TrimSpace(d.Combustible)
	d.Estado = strings.TrimSpace(d.Estado)
	d.Documentacion = validation.TrimOptional(d.Documentacion)
	for _, id := range []**int64{&d.OperadorID, &d.AyudanteID, &d.ClienteActualID} {
		if *id != nil && **id == 0 {
			*id = nil
		}
	}
	if d.Estado == "" {
		d.Estado = EstadoDisponible
	}
}

func (d CraneDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("unidad", d.Unidad).Required().MaxLength(50)
	v.Field("tipo", d.Tipo).Required().MaxLength(255)
	v.Field("combustible", d.Combustible).Required().MaxLength(255)
	v.Field("capacidad_toneladas", d.CapacidadToneladas).Required().Between(0.01, 999.99)
	v.Field("pluma_telescopica_metros", d.PlumaTelescopicaMetros).Between(0.01, 999.99)
	v.Field("precio_hora", d.PrecioHora).Between(0.01, 999999.99)
	v.Field("estado", d.Estado).OneOf(EstadoDisponible, EstadoEnServicio, EstadoMantenimiento, EstadoFueraDeServicio)
}

func (d CraneDTO) apply(c *craneDatamodel.Crane) {
	c.Unidad = d.Unidad
	c.Tipo = d.Tipo
	c.Combustible = d.Combustible
	if d.CapacidadToneladas != nil {
		c.CapacidadToneladas = *d.CapacidadToneladas
	}
	c.PlumaTelescopicaMetros = d.PlumaTelescopicaMetros
	c.Documentacion = d.Documentacion
	c.OperadorID = d.OperadorID
	c.AyudanteID = d.AyudanteID
	c.ClienteActualID = d.ClienteActualID
	c.PrecioHora = d.PrecioHora
	c.Estado = d.Estado
}
