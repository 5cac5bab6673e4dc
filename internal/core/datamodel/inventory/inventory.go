package inventory

import "time"

type Item struct {
	ID             int64      `gorm:"primaryKey"`
	Nombre         string     `gorm:"column:nombre;not null"`
	Codigo         *string    `gorm:"column:codigo;size:100;uniqueIndex"`
	Descripcion    *string    `gorm:"column:descripcion"`
	Cantidad       int64      `gorm:"column:cantidad;not null;default:0"`
	UnidadMedida   string     `gorm:"column:unidad_medida;not null"`
	GruaID         *int64     `gorm:"column:grua_id;index"`
	PrecioUnitario *float64   `gorm:"column:precio_unitario;type:decimal(10,2)"`
	FechaCompra    *time.Time `gorm:"column:fecha_compra;type:date"`
	StockMinimo    int64      `gorm:"column:stock_minimo;not null;default:0"`
	Ubicacion      *string    `gorm:"column:ubicacion"`
	Tipo           *string    `gorm:"column:tipo"`
	ProveedorID    *int64     `gorm:"column:proveedor_id;index"`
	Departamento   *string    `gorm:"column:departamento"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string {
	return "inventarios"
}

type Entry struct {
	ID           int64     `gorm:"primaryKey"`
	InventarioID int64     `gorm:"column:inventario_id;index;not null"`
	Cantidad     int64     `gorm:"column:cantidad;not null"`
	FechaEntrada time.Time `gorm:"column:fecha_entrada;type:date;not null"`
	Descripcion  *string   `gorm:"column:descripcion"`
	Responsable  *string   `gorm:"column:responsable"`
	Item         *Item     `gorm:"foreignKey:InventarioID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entry) TableName() string {
	return "entradas_inventario"
}

type Exit struct {
	ID           int64     `gorm:"primaryKey"`
	InventarioID int64     `gorm:"column:inventario_id;index;not null"`
	Cantidad     int64     `gorm:"column:cantidad;not null"`
	FechaSalida  time.Time `gorm:"column:fecha_salida;type:date;not null"`
	Descripcion  *string   `gorm:"column:descripcion"`
	Responsable  *string   `gorm:"column:responsable"`
	Item         *Item     `gorm:"foreignKey:InventarioID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Exit) TableName() string {
	return "salidas_inventario"
}
