package servicereport

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	reportDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/servicereport"
	"github.com/silcast/crane-admin/internal/crane"
	"github.com/silcast/crane-admin/internal/employee"
)

const EntityName = "service_report"

type Report struct {
	ID                   int64             `json:"id"`
	Folio                string            `json:"folio"`
	GruaID               int64             `json:"grua_id"`
	OperadorID           int64             `json:"operador_id"`
	AyudanteID           *int64            `json:"ayudante_id"`
	ClienteID            *int64            `json:"cliente_id"`
	NombreCliente        *string           `json:"nombre_cliente"`
	NombreEmpresaCliente *string           `json:"nombre_empresa_cliente"`
	Fecha                string            `json:"fecha"`
	HoraInicio           *string           `json:"hora_inicio"`
	HoraFin              *string           `json:"hora_fin"`
	TomoDescanso         bool              `json:"tomo_descanso"`
	DescripcionServicio  *string           `json:"descripcion_servicio"`
	Ubicacion            *string           `json:"ubicacion"`
	DuracionHoras        *float64          `json:"duracion_horas"`
	ArchivoPDF           *string           `json:"archivo_pdf"`
	FirmaOperador        *string           `json:"firma_operador"`
	FirmaAyudante        *string           `json:"firma_ayudante"`
	CorreoCliente        *string           `json:"correo_cliente"`
	TelefonoCliente      *string           `json:"telefono_cliente"`
	Grua                 *crane.Summary    `json:"grua"`
	Operador             *employee.Summary `json:"operador"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func FromDataModel(r *reportDatamodel.Report) *Report {
	return &Report{
		ID:                   r.ID,
		Folio:                r.Folio,
		GruaID:               r.GruaID,
		OperadorID:           r.OperadorID,
		AyudanteID:           r.AyudanteID,
		ClienteID:            r.ClienteID,
		NombreCliente:        r.NombreCliente,
		NombreEmpresaCliente: r.NombreEmpresaCliente,
		Fecha:                validation.FormatDate(r.Fecha),
		HoraInicio:           r.HoraInicio,
		HoraFin:              r.HoraFin,
		TomoDescanso:         r.TomoDescanso,
		DescripcionServicio:  r.DescripcionServicio,
		Ubicacion:            r.Ubicacion,
		DuracionHoras:        r.DuracionHoras,
		ArchivoPDF:           r.ArchivoPDF,
		FirmaOperador:        r.FirmaOperador,
		FirmaAyudante:        r.FirmaAyudante,
		CorreoCliente:        r.CorreoCliente,
		TelefonoCliente:      r.TelefonoCliente,
		Grua:                 crane.SummaryFromDataModel(r.Grua),
		Operador:             employee.SummaryFromDataModel(r.Operador),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}
