package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
type CreateItemRequest struct {
	Name      string           `json:"name"`
	SKU       string           `json:"sku"`
	Unit      string           `json:"unit"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	MinStock  decimal.Decimal  `json:"min_stock"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Taxable   bool             `json:"taxable"`
}

// ItemResponse representación de un artículo de inventario.
type ItemResponse struct {
	ID           string           `json:"id"`
	StoreID      string           `json:"store_id"`
	Name         string           `json:"name"`
	SKU          string           `json:"sku"`
	Unit         string           `json:"unit"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinStock     decimal.Decimal  `json:"min_stock"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Taxable      bool             `json:"taxable"`
	Active       bool             `json:"active"`
	BelowMinimum bool             `json:"below_minimum"`
}

// AddStockRequest body para POST /api/inventory/items/:id/add-stock.
type AddStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Note     string          `json:"note,omitempty"`
}

// ReduceStockRequest body para POST /api/inventory/items/:id/reduce-stock.
type ReduceStockRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// MovementResponse representación de un movimiento del ledger.
type MovementResponse struct {
	ID            string           `json:"id"`
	ItemID        string           `json:"item_id"`
	Direction     string           `json:"direction"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PreviousStock decimal.Decimal  `json:"previous_stock"`
	NewStock      decimal.Decimal  `json:"new_stock"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference     string           `json:"reference,omitempty"`
	Note          string           `json:"note,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

// LowStockItemDTO artículo por debajo de su mínimo, con sugerencia de compra.
type LowStockItemDTO struct {
	ItemID            string          `json:"item_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStock          decimal.Decimal `json:"min_stock"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // MinStock*1.5 - CurrentStock
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`      // SuggestedOrderQty * UnitCost
}
