package contact

import (
	"strings"

	"github.com/silcast/crane-admin/internal/core/common/validation"
)

const (
	DefaultSubject = "Nuevo Mensaje de Contacto desde tu Sitio Web"
	SentMessage    = "Correo enviado con éxito"
	FailedMessage  = "Hubo un problema al enviar el correo. Por favor, inténtelo de nuevo más tarde."
)

// ContactDTO is the public contact form payload.
type ContactDTO struct {
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	Mensaje string `json:"mensaje"`
}

func (d *ContactDTO) Normalize() {
	d.Nombre = strings.TrimSpace(d.Nombre)
	d.Email = strings.TrimSpace(d.Email)
	d.Mensaje = strings.TrimSpace(d.Mensaje)
}

func (d ContactDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("nombre", d.Nombre).Required().MaxLength(255)
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	v.Field("mensaje", d.Mensaje).Required().MaxLength(2000)
}

type SendResponse struct {
	Message string `json:"message"`
}
