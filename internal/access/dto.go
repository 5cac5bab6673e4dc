package access

import (
	"strings"
	"time"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/core/common/validation"
	accessDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/access"
)

// AccessDTO is the create/update payload. Timestamps without offset are read in
// the service's location.
type AccessDTO struct {
	EmpleadoID       *int64  `json:"empleado_id"`
	Entrada          string  `json:"entrada"`
	Salida           *string `json:"salida"`
	HoraComidaInicio *string `json:"hora_comida_inicio"`
	HoraComidaFin    *string `json:"hora_comida_fin"`
	Ubicacion        *string `json:"ubicacion"`
	Dispositivo      *string `json:"dispositivo"`
}

func (d *AccessDTO) Normalize() {
	d.Entrada = strings.TrimSpace(d.Entrada)
	for _, p := range []**string{&d.Salida, &d.HoraComidaInicio, &d.HoraComidaFin, &d.Ubicacion, &d.Dispositivo} {
		*p = validation.TrimOptional(*p)
	}
}

func (d AccessDTO) Rules(v *validation.ValidationBuilder, loc *time.Location) {
	v.Field("empleado_id", d.EmpleadoID).Required()
	v.Field("entrada", d.Entrada).Required().DateTime()
	v.Field("salida", d.Salida).DateTime().Custom(d.notBefore("salida", &d.Entrada, loc))
	v.Field("hora_comida_inicio", d.HoraComidaInicio).DateTime()
	v.Field("hora_comida_fin", d.HoraComidaFin).DateTime().Custom(d.notBefore("hora_comida_fin", d.HoraComidaInicio, loc))
	v.Field("ubicacion", d.Ubicacion).MaxLength(255)
	v.Field("dispositivo", d.Dispositivo).MaxLength(255)

	if (d.HoraComidaInicio == nil) != (d.HoraComidaFin == nil) {
		v.AddError("hora_comida_fin", "hora_comida_inicio and hora_comida_fin must be sent together", internal.ErrCodeRequired)
	}
}

// notBefore checks that the field's timestamp is not earlier than the one at ref.
// Unparseable values are left to the DateTime rule.
func (d AccessDTO) notBefore(field string, ref *string, loc *time.Location) validation.ValidatorFunc {
	return func(value interface{}) *internal.AppError {
		s, ok := value.(*string)
		if !ok || s == nil || ref == nil || *ref == "" {
			return nil
		}
		t, err := validation.ParseDateTime(*s, loc)
		if err != nil {
			return nil
		}
		base, err := validation.ParseDateTime(*ref, loc)
		if err != nil {
			return nil
		}
		if t.Before(base) {
			return internal.NewValidationFieldError(field, field+" must not be earlier than its start", internal.ErrCodeInvalidDate)
		}
		return nil
	}
}

func (d AccessDTO) apply(a *accessDatamodel.Access, loc *time.Location) {
	entrada, _ := validation.ParseDateTime(d.Entrada, loc)

	a.EmpleadoID = *d.EmpleadoID
	a.Entrada = entrada.UTC()
	a.Salida = parseUTC(d.Salida, loc)
	a.HoraComidaInicio = parseUTC(d.HoraComidaInicio, loc)
	a.HoraComidaFin = parseUTC(d.HoraComidaFin, loc)
	a.Ubicacion = d.Ubicacion
	a.Dispositivo = d.Dispositivo
}

func parseUTC(s *string, loc *time.Location) *time.Time {
	if s == nil {
		return nil
	}
	t, err := validation.ParseDateTime(*s, loc)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
