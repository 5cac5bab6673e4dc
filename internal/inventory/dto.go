package inventory

import (
	"strings"
	"time"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	inventoryDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/inventory"
)

// ItemDTO is the create/update payload of an inventory item.
type ItemDTO struct {
	Nombre         string   `json:"nombre"`
	Codigo         *string  `json:"codigo"`
	Descripcion    *string  `json:"descripcion"`
	Cantidad       *int64   `json:"cantidad"`
	UnidadMedida   string   `json:"unidad_medida"`
	GruaID         *int64   `json:"grua_id"`
	PrecioUnitario *float64 `json:"precio_unitario"`
	FechaCompra    *string  `json:"fecha_compra"`
	StockMinimo    *int64   `json:"stock_minimo"`
	Ubicacion      *string  `json:"ubicacion"`
	Tipo           *string  `json:"tipo"`
	ProveedorID    *int64   `json:"proveedor_id"`
	Departamento   *string  `json:"departamento"`
}

func (d *ItemDTO) Normalize() {
	d.Nombre = strings.TrimSpace(d.Nombre)
	d.UnidadMedida = strings.TrimSpace(d.UnidadMedida)
	for _, p := range []**string{&d.Codigo, &d.Descripcion, &d.FechaCompra, &d.Ubicacion, &d.Tipo, &d.Departamento} {
		*p = validation.TrimOptional(*p)
	}
	for _, id := range []**int64{&d.GruaID, &d.ProveedorID} {
		if *id != nil && **id == 0 {
			*id = nil
		}
	}
}

func (d ItemDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("nombre", d.Nombre).Required().MaxLength(255)
	v.Field("codigo", d.Codigo).MaxLength(100)
	v.Field("cantidad", d.Cantidad).Required().Min(0)
	v.Field("unidad_medida", d.UnidadMedida).Required().MaxLength(50)
	v.Field("precio_unitario", d.PrecioUnitario).Min(0)
	v.Field("fecha_compra", d.FechaCompra).Date()
	v.Field("stock_minimo", d.StockMinimo).Min(0)
	v.Field("ubicacion", d.Ubicacion).MaxLength(255)
	v.Field("tipo", d.Tipo).MaxLength(255)
	v.Field("departamento", d.Departamento).MaxLength(255)
}

func (d ItemDTO) apply(i *inventoryDatamodel.Item) {
	fechaCompra, _ := validation.ParseDatePtr(d.FechaCompra, time.UTC)

	i.Nombre = d.Nombre
	i.Codigo = d.Codigo
	i.Descripcion = d.Descripcion
	if d.Cantidad != nil {
		i.Cantidad = *d.Cantidad
	}
	i.UnidadMedida = d.UnidadMedida
	i.GruaID = d.GruaID
	i.PrecioUnitario = d.PrecioUnitario
	i.FechaCompra = fechaCompra
	i.StockMinimo = 0
	if d.StockMinimo != nil {
		i.StockMinimo = *d.StockMinimo
	}
	i.Ubicacion = d.Ubicacion
	i.Tipo = d.Tipo
	i.ProveedorID = d.ProveedorID
	i.Departamento = d.Departamento
}

// StockDTO is the payload of a stock entry or exit.
type StockDTO struct {
	Cantidad    *int64  `json:"cantidad"`
	Fecha       string  `json:"fecha"`
	Descripcion *string `json:"descripcion"`
	Responsable *string `json:"responsable"`
}

func (d *StockDTO) Normalize() {
	d.Fecha = strings.TrimSpace(d.Fecha)
	d.Descripcion = validation.TrimOptional(d.Descripcion)
	d.Responsable = validation.TrimOptional(d.Responsable)
}

func (d StockDTO) Rules(v *validation.ValidationBuilder) {
	v.Field("cantidad", d.Cantidad).Required().Min(1)
	v.Field("fecha", d.Fecha).Required().Date()
	v.Field("responsable", d.Responsable).MaxLength(255)
}

func (d StockDTO) entry(itemID int64) *inventoryDatamodel.Entry {
	fecha, _ := validation.ParseDate(d.Fecha, time.UTC)
	return &inventoryDatamodel.Entry{
		InventarioID: itemID,
		Cantidad:     *d.Cantidad,
		FechaEntrada: fecha,
		Descripcion:  d.Descripcion,
		Responsable:  d.Responsable,
	}
}

func (d StockDTO) exit(itemID int64) *inventoryDatamodel.Exit {
	fecha, _ := validation.ParseDate(d.Fecha, time.UTC)
	return &inventoryDatamodel.Exit{
		InventarioID: itemID,
		Cantidad:     *d.Cantidad,
		FechaSalida:  fecha,
		Descripcion:  d.Descripcion,
		Responsable:  d.Responsable,
	}
}
