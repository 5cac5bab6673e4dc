package servicereport

import (
	"strings"
	"time"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	reportDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/servicereport"
)

// ReportDTO is the create/update payload.
type ReportDTO struct {
	Folio                string   `json:"folio"`
	GruaID               *int64   `json:"grua_id"`
	OperadorID           *int64   `json:"operador_id"`
	AyudanteID           *int64   `json:"ayudante_id"`
	ClienteID            *int64   `json:"cliente_id"`
	NombreCliente        *string  `json:"nombre_cliente"`
	NombreEmpresaCliente *string  `json:"nombre_empresa_cliente"`
	Fecha                string   `json:"fecha"`
	HoraInicio           *string  `json:"hora_inicio"`
	HoraFin              *string  `json:"hora_fin"`
	TomoDescanso         bool     `json:"tomo_descanso"`
	DescripcionServicio  *string  `json:"descripcion_servicio"`
	Ubicacion            *string  `json:"ubicacion"`
	DuracionHoras        *float64 `json:"duracion_horas"`
	ArchivoPDF           *string  `json:"archivo_pdf"`
	FirmaOperador        *string  `json:"firma_operador"`
	FirmaAyudante        *string  `json:"firma_ayudante"`
	CorreoCliente        *string  `json:"correo_cliente"`
	TelefonoCliente      *string  `json:"telefono_cliente"`
}

func (d *ReportDTO) Normalize() {
	d.Folio = strings.TrimSpace(d.Folio)
	d.Fecha = strings.TrimSpace(d.Fecha)
	for _, p := range []**string{
		&d.NombreCliente, &d.NombreEmpresaCliente, &d.HoraInicio, &d.HoraFin,
		&d.DescripcionServicio, &d.Ubicacion, &d.ArchivoPDF, &d.FirmaOperador,
		&d.FirmaAyudante, &d.CorreoCliente, &d.TelefonoCliente,
	} {
		*p = validation.TrimOptional(*p)
	}
	for _, id := range []**int64{&d.AyudanteID, &d.ClienteID} {
		if *id != nil && **id == 0 {
			*id = nil
		}
	}
}

func (d ReportDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("folio", d.Folio).Required().MaxLength(50)
	v.Field("grua_id", d.GruaID).Required()
	v.Field("operador_id", d.OperadorID).Required()
	v.Field("fecha", d.Fecha).Required().Date()
	v.Field("hora_inicio", d.HoraInicio).Clock()
	v.Field("hora_fin", d.HoraFin).Clock()
	v.Field("duracion_horas", d.DuracionHoras).Min(0)
	v.Field("nombre_cliente", d.NombreCliente).MaxLength(255)
	v.Field("nombre_empresa_cliente", d.NombreEmpresaCliente).MaxLength(255)
	v.Field("ubicacion", d.Ubicacion).MaxLength(255)
	v.Field("correo_cliente", d.CorreoCliente).Email().MaxLength(255)
	v.Field("telefono_cliente", d.TelefonoCliente).MaxLength(20)
}

func (d ReportDTO) apply(r *reportDatamodel.Report) {
	fecha, _ := validation.ParseDate(d.Fecha, time.UTC)

	r.Folio = d.Folio
	r.GruaID = *d.GruaID
	r.OperadorID = *d.OperadorID
	r.AyudanteID = d.AyudanteID
	r.ClienteID = d.ClienteID
	r.NombreCliente = d.NombreCliente
	r.NombreEmpresaCliente = d.NombreEmpresaCliente
	r.Fecha = fecha
	r.HoraInicio = d.HoraInicio
	r.HoraFin = d.HoraFin
	r.TomoDescanso = d.TomoDescanso
	r.DescripcionServicio = d.DescripcionServicio
	r.Ubicacion = d.Ubicacion
	r.DuracionHoras = d.DuracionHoras
	r.ArchivoPDF = d.ArchivoPDF
	r.FirmaOperador = d.FirmaOperador
	r.FirmaAyudante = d.FirmaAyudante
	r.CorreoCliente = d.CorreoCliente
	r.TelefonoCliente = d.TelefonoCliente
}
