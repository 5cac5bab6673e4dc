package inventory

import (
	"time"

	"github.com/silcast/crane-admin/internal/core/common/validation"
	inventoryDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/inventory"
)

const EntityName = "inventory"

type Item struct {
	ID             int64     `json:"id"`
	Nombre         string    `json:"nombre"`
	Codigo         *string   `json:"codigo"`
	Descripcion    *string   `json:"descripcion"`
	Cantidad       int64     `json:"cantidad"`
	UnidadMedida   string    `json:"unidad_medida"`
	GruaID         *int64    `json:"grua_id"`
	PrecioUnitario *float64  `json:"precio_unitario"`
	FechaCompra    *string   `json:"fecha_compra"`
	StockMinimo    int64     `json:"stock_minimo"`
	BajoStock      bool      `json:"bajo_stock"`
	Ubicacion      *string   `json:"ubicacion"`
	Tipo           *string   `json:"tipo"`
	ProveedorID    *int64    `json:"proveedor_id"`
	Departamento   *string   `json:"departamento"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StockMovement is one entry into or exit from an item's stock.
type StockMovement struct {
	ID           int64     `json:"id"`
	InventarioID int64     `json:"inventario_id"`
	Cantidad     int64     `json:"cantidad"`
	Fecha        string    `json:"fecha"`
	Descripcion  *string   `json:"descripcion"`
	Responsable  *string   `json:"responsable"`
	CreatedAt    time.Time `json:"created_at"`
}

// Movements groups the stock history of one item.
type Movements struct {
	Entradas []*StockMovement `json:"entradas"`
	Salidas  []*StockMovement `json:"salidas"`
}

func FromDataModel(i *inventoryDatamodel.Item) *Item {
	return &Item{
		ID:             i.ID,
		Nombre:         i.Nombre,
		Codigo:         i.Codigo,
		Descripcion:    i.Descripcion,
		Cantidad:       i.Cantidad,
		UnidadMedida:   i.UnidadMedida,
		GruaID:         i.GruaID,
		PrecioUnitario: i.PrecioUnitario,
		FechaCompra:    validation.FormatDatePtr(i.FechaCompra),
		StockMinimo:    i.StockMinimo,
		BajoStock:      i.Cantidad <= i.StockMinimo,
		Ubicacion:      i.Ubicacion,
		Tipo:           i.Tipo,
		ProveedorID:    i.ProveedorID,
		Departamento:   i.Departamento,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func EntryFromDataModel(e *inventoryDatamodel.Entry) *StockMovement {
	return &StockMovement{
		ID:           e.ID,
		InventarioID: e.InventarioID,
		Cantidad:     e.Cantidad,
		Fecha:        validation.FormatDate(e.FechaEntrada),
		Descripcion:  e.Descripcion,
		Responsable:  e.Responsable,
		CreatedAt:    e.CreatedAt,
	}
}

func ExitFromDataModel(e *inventoryDatamodel.Exit) *StockMovement {
	return &StockMovement{
		ID:           e.ID,
		InventarioID: e.InventarioID,
		Cantidad:     e.Cantidad,
		Fecha:        validation.FormatDate(e.FechaSalida),
		Descripcion:  e.Descripcion,
		Responsable:  e.Responsable,
		CreatedAt:    e.CreatedAt,
	}
}
