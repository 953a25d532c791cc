package recipes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
	"github.com/jhoicas/restopos-api/internal/domain/units"
)

// defaultCommission comisión de plataformas de entrega a terceros.
var defaultCommission = decimal.NewFromFloat(0.30)

var hundred = decimal.NewFromInt(100)

// Config parámetros del motor de costos.
type Config struct {
	CommissionRate decimal.Decimal // comisión de canal de terceros; 0 = default 0.30
}

// CostUseCase calcula el costo por porción de una receta contra los costos
// unitarios vigentes del inventario, los márgenes por canal, y proyecta
// escenarios "qué pasa si el proveedor sube el precio". El costo de un
// ingrediente es siempre derivado, nunca almacenado.
type CostUseCase struct {
	recipeRepo repository.RecipeRepository
	itemRepo   repository.InventoryItemRepository
	commission decimal.Decimal
}

// NewCostUseCase construye el motor de costos de recetas.
func NewCostUseCase(recipeRepo repository.RecipeRepository, itemRepo repository.InventoryItemRepository, cfg Config) *CostUseCase {
	commission := cfg.CommissionRate
	if commission.IsZero() {
		commission = defaultCommission
	}
	return &CostUseCase{recipeRepo: recipeRepo, itemRepo: itemRepo, commission: commission}
}

// Create registra una receta con sus ingredientes.
func (uc *CostUseCase) Create(ctx context.Context, storeID string, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.Name == "" || in.Portions <= 0 || len(in.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, ing := range in.Ingredients {
		if ing.ItemID == "" || !ing.Quantity.GreaterThan(decimal.Zero) || ing.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(ing.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.StoreID != storeID {
			return nil, domain.ErrForbidden
		}
	}
	now := time.Now()
	recipe := &entity.Recipe{
		ID:           uuid.New().String(),
		StoreID:      storeID,
		Name:         in.Name,
		ProductID:    in.ProductID,
		Portions:     in.Portions,
		Instructions: in.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, ing := range in.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, &entity.RecipeIngredient{
			ID:       uuid.New().String(),
			RecipeID: recipe.ID,
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// GetByID obtiene una receta con sus ingredientes.
func (uc *CostUseCase) GetByID(ctx context.Context, storeID, recipeID string) (*dto.RecipeResponse, error) {
	recipe, err := uc.loadRecipe(storeID, recipeID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// ListByStore lista las recetas de la tienda.
func (uc *CostUseCase) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*dto.RecipeResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.recipeRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRecipeResponse(r))
	}
	return out, nil
}

// CostReport calcula costo total, costo por porción y márgenes por canal de
// una receta con los costos unitarios vigentes.
func (uc *CostUseCase) CostReport(ctx context.Context, storeID, recipeID string) (*dto.RecipeCostResponse, error) {
	recipe, err := uc.loadRecipe(storeID, recipeID)
	if err != nil {
		return nil, err
	}
	return uc.buildReport(recipe, nil)
}

// SimulateIngredientCost proyecta el impacto de un nuevo costo unitario de un
// insumo sobre TODAS las recetas que lo usan. Es una proyección pura: no
// escribe nada; las recetas que no usan el insumo no cambian.
func (uc *CostUseCase) SimulateIngredientCost(ctx context.Context, storeID, itemID string, newUnitCost decimal.Decimal) (*dto.SimulationResponse, error) {
	if newUnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.StoreID != storeID {
		return nil, domain.ErrForbidden
	}

	affected, err := uc.recipeRepo.ListByIngredient(itemID)
	if err != nil {
		return nil, err
	}

	override := func(id string) *decimal.Decimal {
		if id == itemID {
			return &newUnitCost
		}
		return nil
	}

	resp := &dto.SimulationResponse{
		ItemID:          item.ID,
		ItemName:        item.Name,
		CurrentUnitCost: item.UnitCost,
		NewUnitCost:     newUnitCost,
	}
	for _, recipe := range affected {
		current, err := uc.buildReport(recipe, nil)
		if err != nil {
			return nil, err
		}
		simulated, err := uc.buildReport(recipe, override)
		if err != nil {
			return nil, err
		}
		resp.Recipes = append(resp.Recipes, dto.SimulationEntryDTO{
			RecipeID:              recipe.ID,
			RecipeName:            recipe.Name,
			CurrentCostPerPortion: current.CostPerPortion,
			NewCostPerPortion:     simulated.CostPerPortion,
			CostDelta:             simulated.CostPerPortion.Sub(current.CostPerPortion),
			CurrentDirectMargin:   current.DirectMargin,
			NewDirectMargin:       simulated.DirectMargin,
		})
	}
	return resp, nil
}

// buildReport ejecuta el cálculo común, con un override opcional de costo
// unitario por insumo (modo simulación).
func (uc *CostUseCase) buildReport(recipe *entity.Recipe, override func(itemID string) *decimal.Decimal) (*dto.RecipeCostResponse, error) {
	var total decimal.Decimal
	lines := make([]dto.IngredientCostDTO, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		item, err := uc.itemRepo.GetByID(ing.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		unitCost := item.UnitCost
		if override != nil {
			if c := override(ing.ItemID); c != nil {
				unitCost = *c
			}
		}
		lineCost := units.Cost(ing.Quantity, ing.Unit, item.Unit, unitCost)
		total = total.Add(lineCost)
		lines = append(lines, dto.IngredientCostDTO{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			StockUnit: item.Unit,
			UnitCost:  unitCost,
			LineCost:  lineCost,
		})
	}

	// Porciones no positivas: costo por porción indefinido → cero.
	perPortion := decimal.Zero
	if recipe.Portions > 0 {
		perPortion = total.Div(decimal.NewFromInt(int64(recipe.Portions)))
	}

	salePrice := decimal.Zero
	if recipe.ProductID != "" {
		product, err := uc.itemRepo.GetByID(recipe.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil && product.SalePrice != nil {
			salePrice = *product.SalePrice
		}
	}

	directMargin := salePrice.Sub(perPortion)
	directPct := decimal.Zero
	if salePrice.GreaterThan(decimal.Zero) {
		directPct = directMargin.Div(salePrice).Mul(hundred)
	}

	net := salePrice.Mul(decimal.NewFromInt(1).Sub(uc.commission))
	tpMargin := net.Sub(perPortion)
	tpPct := decimal.Zero
	if net.GreaterThan(decimal.Zero) {
		tpPct = tpMargin.Div(net).Mul(hundred)
	}

	return &dto.RecipeCostResponse{
		RecipeID:            recipe.ID,
		RecipeName:          recipe.Name,
		Portions:            recipe.Portions,
		Ingredients:         lines,
		TotalCost:           total,
		CostPerPortion:      perPortion,
		SalePrice:           salePrice,
		DirectMargin:        directMargin,
		DirectMarginPct:     directPct,
		ThirdPartyNet:       net,
		ThirdPartyMargin:    tpMargin,
		ThirdPartyMarginPct: tpPct,
		CommissionRate:      uc.commission,
	}, nil
}

func (uc *CostUseCase) loadRecipe(storeID, recipeID string) (*entity.Recipe, error) {
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if recipe.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return recipe, nil
}

func toRecipeResponse(recipe *entity.Recipe) *dto.RecipeResponse {
	resp := &dto.RecipeResponse{
		ID:           recipe.ID,
		StoreID:      recipe.StoreID,
		Name:         recipe.Name,
		ProductID:    recipe.ProductID,
		Portions:     recipe.Portions,
		Instructions: recipe.Instructions,
	}
	for _, ing := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, dto.RecipeIngredientRequest{
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return resp
}
