package client

import "time"

type Client struct {
	ID        int64     `gorm:"primaryKey"`
	Nombre    string    `gorm:"column:nombre;not null"`
	Empresa   *string   `gorm:"column:empresa"`
	Telefono  *string   `gorm:"column:telefono;size:20"`
	Correo    *string   `gorm:"column:correo"`
	Direccion *string   `gorm:"column:direccion"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Client) TableName() string {
	return "clientes"
}
