package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

// ItemUseCase CRUD de artículos de inventario. El stock inicial siempre es
// cero: cualquier existencia entra después por el ledger, nunca directo.
type ItemUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.InventoryItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create crea un artículo con stock cero.
func (uc *ItemUseCase) Create(ctx context.Context, storeID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.SKU == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) || in.MinStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.itemRepo.GetByStoreAndSKU(storeID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		StoreID:      storeID,
		Name:         in.Name,
		SKU:          in.SKU,
		Unit:         in.Unit,
		UnitCost:     in.UnitCost,
		CurrentStock: decimal.Zero,
		MinStock:     in.MinStock,
		SalePrice:    in.SalePrice,
		Taxable:      in.Taxable,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo de la tienda.
func (uc *ItemUseCase) GetByID(ctx context.Context, storeID, itemID string) (*dto.ItemResponse, error) {
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
	return toItemResponse(item), nil
}

// List lista los artículos de la tienda.
func (uc *ItemUseCase) List(ctx context.Context, storeID string, limit, offset int) ([]*dto.ItemResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.itemRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

func toItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           item.ID,
		StoreID:      item.StoreID,
		Name:         item.Name,
		SKU:          item.SKU,
		Unit:         item.Unit,
		UnitCost:     item.UnitCost,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		SalePrice:    item.SalePrice,
		Taxable:      item.Taxable,
		Active:       item.Active,
		BelowMinimum: item.CurrentStock.LessThanOrEqual(item.MinStock),
	}
}
