package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

// LedgerUseCase mantiene current_stock como función del historial de
// movimientos y es el único camino legítimo de mutación del stock.
//
// El protocolo es deliberadamente NO transaccional: el insert del movimiento
// y el update del contador son dos escrituras independientes contra el store.
// Si el update falla después del insert, el ledger y la caché divergen; esa
// deriva es parte del contrato observable y no se corrige automáticamente.
type LedgerUseCase struct {
	itemRepo repository.InventoryItemRepository
	movRepo  repository.StockMovementRepository
}

// NewLedgerUseCase construye el ledger de stock.
func NewLedgerUseCase(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// AddStockInput entrada para registrar stock (compra, ajuste positivo).
type AddStockInput struct {
	StoreID  string
	ItemID   string
	Quantity decimal.Decimal // > 0
	UnitCost decimal.Decimal // >= 0, se captura en el movimiento
	ActorID  string
	Note     string
}

// ReduceStockInput entrada para descontar stock (venta, merma).
type ReduceStockInput struct {
	StoreID   string
	ItemID    string
	Quantity  decimal.Decimal // > 0
	Reference string          // id de la orden origen
	ActorID   string
	Note      string
}

// AddStock registra una entrada: lee el stock actual, inserta el movimiento
// con snapshots previous/new y luego actualiza el contador del artículo.
func (uc *LedgerUseCase) AddStock(ctx context.Context, in AddStockInput) (*entity.InventoryItem, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unitCost := in.UnitCost
	return uc.apply(ctx, movementInput{
		storeID:   in.StoreID,
		itemID:    in.ItemID,
		direction: entity.MovementEntry,
		quantity:  in.Quantity,
		unitCost:  &unitCost,
		actorID:   in.ActorID,
		note:      in.Note,
	})
}

// ReduceStock registra una salida. No rechaza reducciones que dejen el stock
// en negativo: el stock negativo persiste y solo se señala en el reporte de
// stock bajo. Callers que quieran bloqueo duro deben pre-validar.
func (uc *LedgerUseCase) ReduceStock(ctx context.Context, in ReduceStockInput) (*entity.InventoryItem, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, movementInput{
		storeID:   in.StoreID,
		itemID:    in.ItemID,
		direction: entity.MovementExit,
		quantity:  in.Quantity,
		reference: in.Reference,
		actorID:   in.ActorID,
		note:      in.Note,
	})
}

type movementInput struct {
	storeID   string
	itemID    string
	direction string
	quantity  decimal.Decimal
	unitCost  *decimal.Decimal
	reference string
	actorID   string
	note      string
}

// apply ejecuta el protocolo común de ambas operaciones (signo opuesto):
// leer, insertar movimiento, actualizar contador. Sin rollback entre pasos.
func (uc *LedgerUseCase) apply(_ context.Context, in movementInput) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(in.itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.StoreID != in.storeID {
		return nil, domain.ErrForbidden
	}

	previous := item.CurrentStock
	newStock := previous.Add(in.quantity)
	if in.direction == entity.MovementExit {
		newStock = previous.Sub(in.quantity)
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:            uuid.New().String(),
		StoreID:       item.StoreID,
		ItemID:        item.ID,
		Direction:     in.direction,
		Quantity:      in.quantity,
		PreviousStock: previous,
		NewStock:      newStock,
		UnitCost:      in.unitCost,
		Reference:     in.reference,
		Note:          in.note,
		CreatedBy:     in.actorID,
		CreatedAt:     now,
	}
	if err := uc.movRepo.Create(movement); err != nil {
		return nil, err
	}

	if err := uc.itemRepo.UpdateStock(item.ID, newStock); err != nil {
		// El movimiento ya quedó en el ledger: contador y ledger divergen.
		log.Warn().Err(err).
			Str("item_id", item.ID).
			Str("movement_id", movement.ID).
			Msg("movimiento registrado pero el contador de stock no se actualizó")
		return nil, err
	}

	item.CurrentStock = newStock
	item.UpdatedAt = now
	return item, nil
}

// ListMovements devuelve el historial de movimientos de un artículo.
func (uc *LedgerUseCase) ListMovements(
	ctx context.Context,
	storeID, itemID string,
	from, to *time.Time,
	limit, offset int,
) ([]*entity.StockMovement, error) {
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
	if limit <= 0 {
		limit = 50
	}
	return uc.movRepo.ListByItem(itemID, from, to, limit, offset)
}
