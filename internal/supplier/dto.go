package supplier

import (
	"strings"

	"github.com/silcast/crane-admin/internal/core/common/validation"
)

// SupplierDTO is the create/update payload.
type SupplierDTO struct {
	Nombre    string  `json:"nombre"`
	Contacto  *string `json:"contacto"`
	Telefono  *string `json:"telefono"`
	Correo    *string `json:"correo"`
	Direccion *string `json:"direccion"`
	Notas     *string `json:"notas"`
}

func (d *SupplierDTO) Normalize() {
	d.Nombre = strings.TrimSpace(d.Nombre)
	d.Contacto = validation.TrimOptional(d.Contacto)
	d.Telefono = validation.TrimOptional(d.Telefono)
	d.Correo = validation.TrimOptional(d.Correo)
	d.Direccion = validation.TrimOptional(d.Direccion)
	d.Notas = validation.TrimOptional(d.Notas)
}

func (d SupplierDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("nombre", d.Nombre).Required().MaxLength(255)
	v.Field("contacto", d.Contacto).MaxLength(255)
	v.Field("telefono", d.Telefono).MaxLength(20)
	v.Field("correo", d.Correo).Email().MaxLength(255)
}

func (d SupplierDTO) apply(s *Supplier) {
	s.Nombre = d.Nombre
	s.Contacto = d.Contacto
	s.Telefono = d.Telefono
	s.Correo = d.Correo
	s.Direccion = d.Direccion
	s.Notas = d.Notas
}
