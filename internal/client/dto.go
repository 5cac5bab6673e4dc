package client

import (
	"strings"

	"github.com/silcast/crane-admin/internal/core/common/validation"
)

type ClientDTO struct {
	Nombre    string  `json:"nombre"`
	Empresa   *string `json:"empresa"`
	Telefono  *string `json:"telefono"`
	Correo    *string `json:"correo"`
	Direccion *string `json:"direccion"`
}

func (d *ClientDTO) Normalize() {
	d.Nombre = strings.TrimSpace(d.Nombre)
	d.Empresa = validation.TrimOptional(d.Empresa)
	d.Telefono = validation.TrimOptional(d.Telefono)
	d.Correo = validation.TrimOptional(d.Correo)
	d.Direccion = validation.TrimOptional(d.Direccion)
}

func (d ClientDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("nombre", d.Nombre).Required().MaxLength(255)
	v.Field("empresa", d.Empresa).MaxLength(255)
	v.Field("telefono", d.Telefono).MaxLength(20)
	v.Field("correo", d.Correo).Email().MaxLength(255)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (d ClientDTO) apply(c *Client) {
	c.Nombre = d.Nombre
	c.Empresa = d.Empresa
	c.Telefono = d.Telefono
	c.Correo = d.Correo
	c.Direccion = d.Direccion
}
