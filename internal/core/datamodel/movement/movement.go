package movement

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/datamodel/crane"
	"github.com/silcast/crane-admin/internal/core/datamodel/employee"
)

// Movement is one crane entry or exit event.
type Movement struct {
	ID                 int64              `gorm:"primaryKey"`
	GruaID             int64              `gorm:"column:grua_id;index;not null"`
	OperadorID         *int64             `gorm:"column:operador_id;index"`
	FechaHoraEntrada   *time.Time         `gorm:"column:fecha_hora_entrada;index"`
	FechaHoraSalida    *time.Time         `gorm:"column:fecha_hora_salida"`
	Destino            *string            `gorm:"column:destino"`
	KilometrajeEntrada *float64           `gorm:"column:kilometraje_entrada;type:decimal(8,2)"`
	KilometrajeSalida  *float64           `gorm:"column:kilometraje_salida;type:decimal(8,2)"`
	CombustibleEntrada *float64           `gorm:"column:combustible_entrada;type:decimal(5,2)"`
	CombustibleSalida  *float64           `gorm:"column:combustible_salida;type:decimal(5,2)"`
	Descripcion        *string            `gorm:"column:descripcion"`
	Grua               *crane.Crane       `gorm:"foreignKey:GruaID;constraint:OnDelete:CASCADE"`
	Operador           *employee.Employee `gorm:"foreignKey:OperadorID;constraint:OnDelete:SET NULL"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Movement) TableName() string {
	return "entradas_salidas_gruas"
}
