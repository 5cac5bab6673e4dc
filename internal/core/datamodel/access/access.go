package access

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/datamodel/employee"
)

// Access is one clock-in/clock-out record of an employee.
type Access struct {
	ID               int64              `gorm:"primaryKey"`
	EmpleadoID       int64              `gorm:"column:empleado_id;index;not null"`
	Entrada          time.Time          `gorm:"column:entrada;not null"`
	Salida           *time.Time         `gorm:"column:salida"`
	HoraComidaInicio *time.Time         `gorm:"column:hora_comida_inicio"`
	HoraComidaFin    *time.Time         `gorm:"column:hora_comida_fin"`
	Ubicacion        *string            `gorm:"column:ubicacion"`
	Dispositivo      *string            `gorm:"column:dispositivo"`
	Empleado         *employee.Employee `gorm:"foreignKey:EmpleadoID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Access) TableName() string {
	return "accesos"
}
