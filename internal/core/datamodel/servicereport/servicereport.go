package servicereport

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/datamodel/crane"
	"github.com/silcast/crane-admin/internal/core/datamodel/employee"
)

type Report struct {
	ID                   int64              `gorm:"primaryKey"`
	Folio                string             `gorm:"column:folio;size:50;uniqueIndex;not null"`
	GruaID               int64              `gorm:"column:grua_id;index;not null"`
	OperadorID           int64              `gorm:"column:operador_id;index;not null"`
	AyudanteID           *int64             `gorm:"column:ayudante_id"`
	ClienteID            *int64             `gorm:"column:cliente_id"`
	NombreCliente        *string            `gorm:"column:nombre_cliente"`
	NombreEmpresaCliente *string            `gorm:"column:nombre_empresa_cliente"`
	Fecha                time.Time          `gorm:"column:fecha;type:date;not null"`
	HoraInicio           *string            `gorm:"column:hora_inicio;size:8"`
	HoraFin              *string            `gorm:"column:hora_fin;size:8"`
	TomoDescanso         bool               `gorm:"column:tomo_descanso;not null;default:false"`
	DescripcionServicio  *string            `gorm:"column:descripcion_servicio"`
	Ubicacion            *string            `gorm:"column:ubicacion"`
	DuracionHoras        *float64           `gorm:"column:duracion_horas;type:decimal(5,2)"`
	ArchivoPDF           *string            `gorm:"column:archivo_pdf"`
	FirmaOperador        *string            `gorm:"column:firma_operador"`
	FirmaAyudante        *string            `gorm:"column:firma_ayudante"`
	CorreoCliente        *string            `gorm:"column:correo_cliente"`
	TelefonoCliente      *string            `gorm:"column:telefono_cliente;size:20"`
	Grua                 *crane.Crane       `gorm:"foreignKey:GruaID;constraint:OnDelete:CASCADE"`
	Operador             *employee.Employee `gorm:"foreignKey:OperadorID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Report) TableName() string {
	return "reportes_servicio"
}
