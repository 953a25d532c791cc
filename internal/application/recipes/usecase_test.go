package recipes_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/application/recipes"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct{ items map[string]*entity.InventoryItem }

func (r *fakeItemRepo) Create(i *entity.InventoryItem) error { r.items[i.ID] = i; return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}
func (r *fakeItemRepo) GetByStoreAndSKU(storeID, sku string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListByStore(storeID string, limit, offset int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListBelowMinimum(storeID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) Update(i *entity.InventoryItem) error           { return nil }
func (r *fakeItemRepo) UpdateStock(id string, s decimal.Decimal) error { return nil }
func (r *fakeItemRepo) Delete(id string) error                         { return nil }

type fakeRecipeRepo struct{ recipes map[string]*entity.Recipe }

func (r *fakeRecipeRepo) Create(rec *entity.Recipe) error { r.recipes[rec.ID] = rec; return nil }
func (r *fakeRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	return r.recipes[id], nil
}
func (r *fakeRecipeRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, rec := range r.recipes {
		if rec.StoreID == storeID {
			out = append(out, rec)
		}
	}
	return out, nil
}
func (r *fakeRecipeRepo) ListByIngredient(itemID string) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, rec := range r.recipes {
		for _, ing := range rec.Ingredients {
			if ing.ItemID == itemID {
				out = append(out, rec)
				break
			}
		}
	}
	return out, nil
}
func (r *fakeRecipeRepo) Delete(id string) error { delete(r.recipes, id); return nil }

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func price(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func newFixture() (*recipes.CostUseCase, *fakeRecipeRepo, *fakeItemRepo) {
	itemRepo := &fakeItemRepo{items: map[string]*entity.InventoryItem{
		"carne": {ID: "carne", StoreID: "store-1", Name: "Carne molida",
			Unit: "kg", UnitCost: d("80")},
		"queso": {ID: "queso", StoreID: "store-1", Name: "Queso",
			Unit: "kg", UnitCost: d("120")},
		"hamburguesa": {ID: "hamburguesa", StoreID: "store-1", Name: "Hamburguesa clásica",
			Unit: "pz", SalePrice: price("25")},
	}}
	recipeRepo := &fakeRecipeRepo{recipes: map[string]*entity.Recipe{}}
	uc := recipes.NewCostUseCase(recipeRepo, itemRepo, recipes.Config{})
	return uc, recipeRepo, itemRepo
}

func dtoCreateRecipe() dto.CreateRecipeRequest {
	return dto.CreateRecipeRequest{
		Name:      "Hamburguesa",
		ProductID: "hamburguesa",
		Portions:  4,
		Ingredients: []dto.RecipeIngredientRequest{
			{ItemID: "carne", Quantity: d("500"), Unit: "g"},
		},
	}
}

func baseRecipe() *entity.Recipe {
	return &entity.Recipe{
		ID: "rec-1", StoreID: "store-1", Name: "Hamburguesa", ProductID: "hamburguesa",
		Portions: 4,
		Ingredients: []*entity.RecipeIngredient{
			{ID: "i1", RecipeID: "rec-1", ItemID: "carne", Quantity: d("500"), Unit: "g"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de costos
// ──────────────────────────────────────────────────────────────────────────────

// Vector del contrato: 500 g contra kg a 80 → 40; 4 porciones → 10 por
// porción; precio 25 → margen directo 15 (60%).
func TestCostReport_VectorBase(t *testing.T) {
	uc, recipeRepo, _ := newFixture()
	recipeRepo.recipes["rec-1"] = baseRecipe()

	report, err := uc.CostReport(context.Background(), "store-1", "rec-1")
	require.NoError(t, err)

	assert.True(t, d("40").Equal(report.TotalCost), "costo total %s", report.TotalCost)
	assert.True(t, d("10").Equal(report.CostPerPortion))
	assert.True(t, d("25").Equal(report.SalePrice))
	assert.True(t, d("15").Equal(report.DirectMargin))
	assert.True(t, d("60").Equal(report.DirectMarginPct), "margen directo %% = %s", report.DirectMarginPct)

	// Canal de terceros con comisión default 0.30: neto 17.5, margen 7.5.
	assert.True(t, d("17.5").Equal(report.ThirdPartyNet))
	assert.True(t, d("7.5").Equal(report.ThirdPartyMargin))
	assert.True(t, d("42.86").Equal(report.ThirdPartyMarginPct.Round(2)))
	assert.True(t, d("0.3").Equal(report.CommissionRate))
}

// Pares de unidades fuera de la tabla caen a 1:1 dentro del reporte.
func TestCostReport_UnidadDesconocidaEs1a1(t *testing.T) {
	uc, recipeRepo, _ := newFixture()
	rec := baseRecipe()
	rec.Ingredients = append(rec.Ingredients, &entity.RecipeIngredient{
		ID: "i2", RecipeID: "rec-1", ItemID: "queso", Quantity: d("2"), Unit: "rebanadas",
	})
	recipeRepo.recipes["rec-1"] = rec

	report, err := uc.CostReport(context.Background(), "store-1", "rec-1")
	require.NoError(t, err)

	// 40 de carne + 2*120 de queso (1:1 silencioso) = 280
	assert.True(t, d("280").Equal(report.TotalCost), "costo total %s", report.TotalCost)
}

// Porciones no positivas: costo por porción indefinido → cero, sin división
// entre cero.
func TestCostReport_PorcionesCero(t *testing.T) {
	uc, recipeRepo, _ := newFixture()
	rec := baseRecipe()
	rec.Portions = 0
	recipeRepo.recipes["rec-1"] = rec

	report, err := uc.CostReport(context.Background(), "store-1", "rec-1")
	require.NoError(t, err)
	assert.True(t, report.CostPerPortion.IsZero())
	assert.True(t, d("40").Equal(report.TotalCost), "el total sí se calcula")
}

// Sin producto vendible ligado, los márgenes parten de precio cero.
func TestCostReport_SinPrecioDeVenta(t *testing.T) {
	uc, recipeRepo, _ := newFixture()
	rec := baseRecipe()
	rec.ProductID = ""
	recipeRepo.recipes["rec-1"] = rec

	report, err := uc.CostReport(context.Background(), "store-1", "rec-1")
	require.NoError(t, err)
	assert.True(t, report.SalePrice.IsZero())
	assert.True(t, report.DirectMarginPct.IsZero(), "porcentaje 0 si no hay precio")
	assert.True(t, d("-10").Equal(report.DirectMargin))
}

func TestCostReport_NoEncontrada(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.CostReport(context.Background(), "store-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulación de costo de insumo
// ──────────────────────────────────────────────────────────────────────────────

// Subir el costo del insumo en Δ cambia el costo por porción de cada receta
// afectada exactamente en cantidadConvertida*Δ/porciones; las recetas que no
// usan el insumo no aparecen y nada se escribe.
func TestSimulate_DeltaExacta(t *testing.T) {
	uc, recipeRepo, itemRepo := newFixture()
	recipeRepo.recipes["rec-1"] = baseRecipe() // 500 g de carne, 4 porciones
	recipeRepo.recipes["rec-2"] = &entity.Recipe{
		ID: "rec-2", StoreID: "store-1", Name: "Albóndigas", Portions: 2,
		Ingredients: []*entity.RecipeIngredient{
			{ID: "i3", RecipeID: "rec-2", ItemID: "carne", Quantity: d("1"), Unit: "kg"},
		},
	}
	recipeRepo.recipes["rec-3"] = &entity.Recipe{
		ID: "rec-3", StoreID: "store-1", Name: "Quesadillas", Portions: 2,
		Ingredients: []*entity.RecipeIngredient{
			{ID: "i4", RecipeID: "rec-3", ItemID: "queso", Quantity: d("300"), Unit: "g"},
		},
	}

	// 80 → 100: Δ = 20 por kg
	resp, err := uc.SimulateIngredientCost(context.Background(), "store-1", "carne", d("100"))
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 2, "solo las recetas que usan el insumo")
	byID := map[string]decimal.Decimal{}
	for _, entry := range resp.Recipes {
		byID[entry.RecipeID] = entry.CostDelta
	}
	// rec-1: 0.5 kg * 20 / 4 porciones = 2.5
	assert.True(t, d("2.5").Equal(byID["rec-1"]), "delta rec-1 = %s", byID["rec-1"])
	// rec-2: 1 kg * 20 / 2 porciones = 10
	assert.True(t, d("10").Equal(byID["rec-2"]), "delta rec-2 = %s", byID["rec-2"])

	// Proyección pura: el costo vigente del insumo no cambió.
	assert.True(t, d("80").Equal(itemRepo.items["carne"].UnitCost))
	assert.True(t, d("80").Equal(resp.CurrentUnitCost))
	assert.True(t, d("100").Equal(resp.NewUnitCost))
}

// El margen directo simulado baja exactamente lo que sube el costo por porción.
func TestSimulate_MargenSeDesplaza(t *testing.T) {
	uc, recipeRepo, _ := newFixture()
	recipeRepo.recipes["rec-1"] = baseRecipe()

	resp, err := uc.SimulateIngredientCost(context.Background(), "store-1", "carne", d("120"))
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)

	entry := resp.Recipes[0]
	assert.True(t, entry.CurrentDirectMargin.Sub(entry.NewDirectMargin).Equal(entry.CostDelta),
		"la caída del margen equivale al delta de costo")
}

func TestSimulate_InsumoInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.SimulateIngredientCost(context.Background(), "store-1", "no-existe", d("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de recetas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Receta(t *testing.T) {
	uc, recipeRepo, _ := newFixture()

	resp, err := uc.Create(context.Background(), "store-1", dtoCreateRecipe())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.Ingredients, 1)
	assert.Len(t, recipeRepo.recipes, 1)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	in := dtoCreateRecipe()
	in.Portions = 0
	_, err := uc.Create(ctx, "store-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porciones cero")

	in = dtoCreateRecipe()
	in.Ingredients = nil
	_, err = uc.Create(ctx, "store-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ingredientes")

	in = dtoCreateRecipe()
	in.Ingredients[0].ItemID = "no-existe"
	_, err = uc.Create(ctx, "store-1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
