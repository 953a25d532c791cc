package entity

import "github.com/shopspring/decimal"

// OrderItem representa una línea de detalle de una orden.
// Se crea junto con la cabecera y es inmutable después.
type OrderItem struct {
	ID        string
	OrderID   string
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
