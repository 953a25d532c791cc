package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden (canal de venta).
const (
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Estados de una orden. Las transiciones las dirige el caller: el motor no
// valida estados predecesores, solo que el valor pertenezca al conjunto.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si s es un estado de orden conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order representa la cabecera de una orden de venta.
// OrderNumber es legible (prefijo-fecha-sufijo) y no garantiza unicidad global;
// la probabilidad de colisión se acepta como baja.
type Order struct {
	ID            string
	StoreID       string
	OrderNumber   string
	Type          string // pickup | delivery
	Status        string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string // cash, card, transfer
	PaymentStatus string // pending, paid
	CustomerID    string // vacío si la venta es anónima
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
