package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo o producto del inventario de una tienda.
// CurrentStock es un contador desnormalizado: siempre debe ser reconstruible
// desde stock_movements y solo se muta a través del ledger de stock.
type InventoryItem struct {
	ID           string
	StoreID      string
	Name         string
	SKU          string          // código único por tienda
	Unit         string          // unidad de stock: kg, l, pz, etc.
	UnitCost     decimal.Decimal // costo por unidad de stock
	CurrentStock decimal.Decimal // en la misma unidad de stock; puede ser negativo
	MinStock     decimal.Decimal // umbral mínimo para el indicador de stock bajo
	SalePrice    *decimal.Decimal // solo para artículos vendibles
	Taxable      bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
