package supplier

import (
	"time"

	supplierDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/supplier"
)

const EntityName = "supplier"

type Supplier struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  *string   `json:"contacto"`
	Telefono  *string   `json:"telefono"`
	Correo    *string   `json:"correo"`
	Direccion *string   `json:"direccion"`
	Notas     *string   `json:"notas"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(s *Supplier) *supplierDatamodel.Supplier {
	return &supplierDatamodel.Supplier{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Contacto:  s.Contacto,
		Telefono:  s.Telefono,
		Correo:    s.Correo,
		Direccion: s.Direccion,
		Notas:     s.Notas,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModel(s *supplierDatamodel.Supplier) *Supplier {
	return &Supplier{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Contacto:  s.Contacto,
		Telefono:  s.Telefono,
		Correo:    s.Correo,
		Direccion: s.Direccion,
		Notas:     s.Notas,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
