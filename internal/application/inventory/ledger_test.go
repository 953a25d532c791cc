package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restopos-api/internal/application/inventory"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items           map[string]*entity.InventoryItem
	failUpdateStock error
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.InventoryItem{}}
	for _, item := range items {
		copy := *item
		r.items[item.ID] = &copy
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copy := *item
	return &copy, nil
}

func (r *fakeItemRepo) GetByStoreAndSKU(storeID, sku string) (*entity.InventoryItem, error) {
	for _, item := range r.items {
		if item.StoreID == storeID && item.SKU == sku {
			copy := *item
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListByStore(storeID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, item := range r.items {
		if item.StoreID == storeID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListBelowMinimum(storeID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, item := range r.items {
		if item.StoreID == storeID && item.CurrentStock.LessThanOrEqual(item.MinStock) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error { return nil }

func (r *fakeItemRepo) UpdateStock(itemID string, newStock decimal.Decimal) error {
	if r.failUpdateStock != nil {
		return r.failUpdateStock
	}
	item, ok := r.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentStock = newStock
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type fakeMovementRepo struct {
	movements  []*entity.StockMovement
	failCreate error
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByStore(storeID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func testItem(stock string) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           "item-1",
		StoreID:      "store-1",
		Name:         "Harina",
		SKU:          "HAR-001",
		Unit:         "kg",
		UnitCost:     d("18.50"),
		CurrentStock: d(stock),
		MinStock:     d("5"),
		Active:       true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ledger
// ──────────────────────────────────────────────────────────────────────────────

// Para cualquier secuencia de entradas y salidas, el stock final es
// S0 + Σentradas − Σsalidas y el ledger tiene un movimiento por llamada.
func TestLedger_SecuenciaEntradasSalidas(t *testing.T) {
	itemRepo := newFakeItemRepo(testItem("10"))
	movRepo := &fakeMovementRepo{}
	uc := inventory.NewLedgerUseCase(itemRepo, movRepo)
	ctx := context.Background()

	_, err := uc.AddStock(ctx, inventory.AddStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("5"), UnitCost: d("18"), ActorID: "u1",
	})
	require.NoError(t, err)

	_, err = uc.ReduceStock(ctx, inventory.ReduceStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("3"), Reference: "ord-1", ActorID: "u1",
	})
	require.NoError(t, err)

	_, err = uc.ReduceStock(ctx, inventory.ReduceStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("4"), Reference: "ord-2", ActorID: "u1",
	})
	require.NoError(t, err)

	updated, err := uc.AddStock(ctx, inventory.AddStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("2"), UnitCost: d("19"), ActorID: "u1",
	})
	require.NoError(t, err)

	// 10 + 5 - 3 - 4 + 2 = 10
	assert.True(t, d("10").Equal(updated.CurrentStock),
		"stock final debe ser S0 + Σentradas − Σsalidas, obtenido %s", updated.CurrentStock)
	assert.Len(t, movRepo.movements, 4, "un movimiento por llamada")

	// Los snapshots encadenan: previous de cada movimiento es el new del anterior.
	for i := 1; i < len(movRepo.movements); i++ {
		assert.True(t, movRepo.movements[i-1].NewStock.Equal(movRepo.movements[i].PreviousStock),
			"snapshot del movimiento %d no encadena", i)
	}
}

// ReduceStock permite stock negativo: no hay excepción solo por esa condición.
func TestLedger_ReduceStockPermiteNegativo(t *testing.T) {
	itemRepo := newFakeItemRepo(testItem("2"))
	movRepo := &fakeMovementRepo{}
	uc := inventory.NewLedgerUseCase(itemRepo, movRepo)

	updated, err := uc.ReduceStock(context.Background(), inventory.ReduceStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("5"), Reference: "ord-9", ActorID: "u1",
	})
	require.NoError(t, err, "reducir por debajo de cero no es error")
	assert.True(t, d("-3").Equal(updated.CurrentStock), "el negativo persiste")

	require.Len(t, movRepo.movements, 1)
	mov := movRepo.movements[0]
	assert.Equal(t, entity.MovementExit, mov.Direction)
	assert.True(t, d("2").Equal(mov.PreviousStock))
	assert.True(t, d("-3").Equal(mov.NewStock))
	assert.Nil(t, mov.UnitCost, "las salidas no capturan costo unitario")
	assert.Equal(t, "ord-9", mov.Reference)
}

// Las entradas capturan el costo unitario del momento en el movimiento.
func TestLedger_EntradaCapturaCosto(t *testing.T) {
	itemRepo := newFakeItemRepo(testItem("0"))
	movRepo := &fakeMovementRepo{}
	uc := inventory.NewLedgerUseCase(itemRepo, movRepo)

	_, err := uc.AddStock(context.Background(), inventory.AddStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("20"), UnitCost: d("17.25"), ActorID: "u2", Note: "compra semanal",
	})
	require.NoError(t, err)

	mov := movRepo.movements[0]
	assert.Equal(t, entity.MovementEntry, mov.Direction)
	require.NotNil(t, mov.UnitCost)
	assert.True(t, d("17.25").Equal(*mov.UnitCost))
	assert.Equal(t, "compra semanal", mov.Note)
	assert.Equal(t, "u2", mov.CreatedBy)
}

func TestLedger_Validaciones(t *testing.T) {
	uc := inventory.NewLedgerUseCase(newFakeItemRepo(testItem("10")), &fakeMovementRepo{})
	ctx := context.Background()

	_, err := uc.AddStock(ctx, inventory.AddStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: decimal.Zero, UnitCost: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.AddStock(ctx, inventory.AddStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("1"), UnitCost: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")

	_, err = uc.ReduceStock(ctx, inventory.ReduceStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("-2"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.ReduceStock(ctx, inventory.ReduceStockInput{
		StoreID: "store-1", ItemID: "no-existe", Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ReduceStock(ctx, inventory.ReduceStockInput{
		StoreID: "otra-tienda", ItemID: "item-1", Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Si el insert del movimiento falla, el contador no se toca.
func TestLedger_FalloInsertNoTocaContador(t *testing.T) {
	itemRepo := newFakeItemRepo(testItem("10"))
	movRepo := &fakeMovementRepo{failCreate: errors.New("constraint violation")}
	uc := inventory.NewLedgerUseCase(itemRepo, movRepo)

	_, err := uc.AddStock(context.Background(), inventory.AddStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("5"), UnitCost: d("18"),
	})
	require.Error(t, err)

	item, _ := itemRepo.GetByID("item-1")
	assert.True(t, d("10").Equal(item.CurrentStock), "el stock no cambia si el ledger rechazó")
	assert.Empty(t, movRepo.movements)
}

// Si el update del contador falla después del insert, el movimiento queda en
// el ledger y el contador diverge: la deriva se propaga como error, sin
// rollback del movimiento.
func TestLedger_DerivaContadorSinRollback(t *testing.T) {
	itemRepo := newFakeItemRepo(testItem("10"))
	itemRepo.failUpdateStock = errors.New("connection reset")
	movRepo := &fakeMovementRepo{}
	uc := inventory.NewLedgerUseCase(itemRepo, movRepo)

	_, err := uc.ReduceStock(context.Background(), inventory.ReduceStockInput{
		StoreID: "store-1", ItemID: "item-1", Quantity: d("4"), Reference: "ord-3",
	})
	require.Error(t, err, "el error del update se propaga")

	assert.Len(t, movRepo.movements, 1, "el movimiento no se revierte")
	item, _ := itemRepo.GetByID("item-1")
	assert.True(t, d("10").Equal(item.CurrentStock), "el contador quedó desfasado del ledger")
}
