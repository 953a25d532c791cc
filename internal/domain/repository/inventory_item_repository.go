package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
// UpdateStock es la única escritura de current_stock y solo debe invocarla el
// ledger de stock.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByStoreAndSKU(storeID, sku string) (*entity.InventoryItem, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.InventoryItem, error)
	ListBelowMinimum(storeID string) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	UpdateStock(itemID string, newStock decimal.Decimal) error
	Delete(id string) error
}
