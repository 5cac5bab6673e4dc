package client

import (
	"time"

	clientDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/client"
)

const EntityName = "client"

type Client struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Empresa   *string   `json:"empresa"`
	Telefono  *string   `json:"telefono"`
	Correo    *string   `json:"correo"`
	Direccion *string   `json:"direccion"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(c *Client) *clientDatamodel.Client {
	return &clientDatamodel.Client{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Empresa:   c.Empresa,
		Telefono:  c.Telefono,
		Correo:    c.Correo,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *clientDatamodel.Client) *Client {
	return &Client{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Empresa:   c.Empresa,
		Telefono:  c.Telefono,
		Correo:    c.Correo,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
