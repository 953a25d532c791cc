package repository

import (
	"time"

	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el ledger de
// movimientos. Solo inserta y lee: los movimientos nunca se actualizan ni borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByStore(storeID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
