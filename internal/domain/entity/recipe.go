package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa la receta de un producto terminado.
// El costo de sus ingredientes es derivado, nunca almacenado: depende del
// costo unitario vigente de cada insumo.
type Recipe struct {
	ID           string
	StoreID      string
	Name         string
	ProductID    string // InventoryItem vendible que produce la receta
	Portions     int    // porciones por tanda
	Instructions string
	Ingredients  []*RecipeIngredient
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeIngredient representa un insumo de la receta. Unit es la unidad
// declarada en la receta, que puede diferir de la unidad de stock del insumo.
type RecipeIngredient struct {
	ID       string
	RecipeID string
	ItemID   string
	Quantity decimal.Decimal
	Unit     string
}
