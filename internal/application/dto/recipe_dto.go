package dto

import "github.com/shopspring/decimal"

// RecipeIngredientRequest insumo de una receta al crearla.
type RecipeIngredientRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	Name         string                    `json:"name"`
	ProductID    string                    `json:"product_id"`
	Portions     int                       `json:"portions"`
	Instructions string                    `json:"instructions,omitempty"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients"`
}

// RecipeResponse representación de una receta.
type RecipeResponse struct {
	ID           string                    `json:"id"`
	StoreID      string                    `json:"store_id"`
	Name         string                    `json:"name"`
	ProductID    string                    `json:"product_id"`
	Portions     int                       `json:"portions"`
	Instructions string                    `json:"instructions,omitempty"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients"`
}

// IngredientCostDTO costo derivado de un insumo dentro del reporte de costos.
type IngredientCostDTO struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	StockUnit string          `json:"stock_unit"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineCost  decimal.Decimal `json:"line_cost"`
}

// RecipeCostResponse reporte de costo y márgenes por canal de una receta.
type RecipeCostResponse struct {
	RecipeID            string              `json:"recipe_id"`
	RecipeName          string              `json:"recipe_name"`
	Portions            int                 `json:"portions"`
	Ingredients         []IngredientCostDTO `json:"ingredients"`
	TotalCost           decimal.Decimal     `json:"total_cost"`
	CostPerPortion      decimal.Decimal     `json:"cost_per_portion"`
	SalePrice           decimal.Decimal     `json:"sale_price"`
	DirectMargin        decimal.Decimal     `json:"direct_margin"`
	DirectMarginPct     decimal.Decimal     `json:"direct_margin_pct"`
	ThirdPartyNet       decimal.Decimal     `json:"third_party_net"`
	ThirdPartyMargin    decimal.Decimal     `json:"third_party_margin"`
	ThirdPartyMarginPct decimal.Decimal     `json:"third_party_margin_pct"`
	CommissionRate      decimal.Decimal     `json:"commission_rate"`
}

// SimulateCostRequest body para POST /api/recipes/simulate-cost.
type SimulateCostRequest struct {
	ItemID      string          `json:"item_id"`
	NewUnitCost decimal.Decimal `json:"new_unit_cost"`
}

// SimulationEntryDTO impacto de un cambio de costo de insumo sobre una receta.
type SimulationEntryDTO struct {
	RecipeID             string          `json:"recipe_id"`
	RecipeName           string          `json:"recipe_name"`
	CurrentCostPerPortion decimal.Decimal `json:"current_cost_per_portion"`
	NewCostPerPortion    decimal.Decimal `json:"new_cost_per_portion"`
	CostDelta            decimal.Decimal `json:"cost_delta"`
	CurrentDirectMargin  decimal.Decimal `json:"current_direct_margin"`
	NewDirectMargin      decimal.Decimal `json:"new_direct_margin"`
}

// SimulationResponse proyección "qué pasa si el proveedor sube el precio".
type SimulationResponse struct {
	ItemID          string               `json:"item_id"`
	ItemName        string               `json:"item_name"`
	CurrentUnitCost decimal.Decimal      `json:"current_unit_cost"`
	NewUnitCost     decimal.Decimal      `json:"new_unit_cost"`
	Recipes         []SimulationEntryDTO `json:"recipes"`
}
