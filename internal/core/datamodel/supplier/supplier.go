package supplier

import "time"

type Supplier struct {
	ID        int64     `gorm:"primaryKey"`
	Nombre    string    `gorm:"column:nombre;size:255;uniqueIndex;not null"`
	Contacto  *string   `gorm:"column:contacto"`
	Telefono  *string   `gorm:"column:telefono;size:20"`
	Correo    *string   `gorm:"column:correo"`
	Direccion *string   `gorm:"column:direccion"`
	Notas     *string   `gorm:"column:notas"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Supplier) TableName() string {
	return "proveedores"
}
