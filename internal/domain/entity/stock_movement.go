package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de stock.
const (
	MovementEntry = "entry" // entrada (compra, ajuste positivo)
	MovementExit  = "exit"  // salida (venta, merma, ajuste negativo)
)

// StockMovement representa un movimiento inmutable del ledger de stock.
// Se crea una vez y nunca se actualiza ni borra: es la pista de auditoría
// de la que CurrentStock del artículo es solo una caché.
type StockMovement struct {
	ID            string
	StoreID       string
	ItemID        string
	Direction     string           // entry | exit
	Quantity      decimal.Decimal  // siempre positiva
	PreviousStock decimal.Decimal  // snapshot antes del movimiento
	NewStock      decimal.Decimal  // snapshot después del movimiento
	UnitCost      *decimal.Decimal // costo unitario al momento de la entrada
	Reference     string           // id de la orden u otro documento origen
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
}
