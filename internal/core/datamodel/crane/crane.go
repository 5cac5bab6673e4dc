package crane

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/datamodel/client"
	"github.com/silcast/crane-admin/internal/core/datamodel/employee"
)

type Crane struct {
	ID                     int64              `gorm:"primaryKey"`
	Unidad                 string             `gorm:"column:unidad;size:50;uniqueIndex;not null"`
	Tipo                   string             `gorm:"column:tipo;not null"`
	Combustible            string             `gorm:"column:combustible;not null"`
	CapacidadToneladas     float64            `gorm:"column:capacidad_toneladas;type:decimal(5,2);not null"`
	PlumaTelescopicaMetros *float64           `gorm:"column:pluma_telescopica_metros;type:decimal(5,2)"`
	Documentacion          *string            `gorm:"column:documentacion"`
	OperadorID             *int64             `gorm:"column:operador_id;index"`
	AyudanteID             *int64             `gorm:"column:ayudante_id;index"`
	ClienteActualID        *int64             `gorm:"column:cliente_actual_id;index"`
	PrecioHora             *float64           `gorm:"column:precio_hora;type:decimal(8,2)"`
	Estado                 string             `gorm:"column:estado;size:30;not null;default:disponible"`
	Operador               *employee.Employee `gorm:"foreignKey:OperadorID;constraint:OnDelete:SET NULL"`
	Ayudante               *employee.Employee `gorm:"foreignKey:AyudanteID;constraint:OnDelete:SET NULL"`
	ClienteActual          *client.Client     `gorm:"foreignKey:ClienteActualID;constraint:OnDelete:SET NULL"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Crane) TableName() string {
	return "gruas"
}
