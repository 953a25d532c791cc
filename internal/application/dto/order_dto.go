package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden en el checkout. UnitPrice cero toma el
// precio de venta del artículo; las líneas de recompensa llegan con precio
// cero explícito y Reward=true.
type OrderItemRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reward    bool            `json:"reward,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Type          string             `json:"type"` // pickup | delivery
	CustomerID    string             `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Discount      decimal.Decimal    `json:"discount"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemResponse línea persistida de la orden.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación de una orden.
type OrderResponse struct {
	ID            string              `json:"id"`
	StoreID       string              `json:"store_id"`
	OrderNumber   string              `json:"order_number"`
	Type          string              `json:"type"`
	Status        string              `json:"status"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	CustomerID    string              `json:"customer_id,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// RewardCheckResponse resultado de la evaluación de promoción pre-checkout.
type RewardCheckResponse struct {
	Qualifies bool               `json:"qualifies"`
	Options   []RewardOptionDTO  `json:"options,omitempty"`
}

// RewardOptionDTO opción de recompensa ofrecida al operador.
type RewardOptionDTO struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}
