package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

// LowStockUseCase genera el reporte de artículos en o por debajo de su stock
// mínimo, incluidos los que quedaron en negativo por la permisividad del
// ledger. Este reporte es el único lugar donde el stock bajo se hace visible.
type LowStockUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(itemRepo repository.InventoryItemRepository) *LowStockUseCase {
	return &LowStockUseCase{itemRepo: itemRepo}
}

// Report devuelve los artículos bajo mínimo con cantidad sugerida de compra
// (stock ideal = mínimo * 1.5) y costo estimado, ordenados por déficit.
func (uc *LowStockUseCase) Report(ctx context.Context, storeID string) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListBelowMinimum(storeID)
	if err != nil {
		return nil, err
	}

	ideal := decimal.NewFromFloat(1.5)
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		suggested := item.MinStock.Mul(ideal).Sub(item.CurrentStock)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockItemDTO{
			ItemID:            item.ID,
			SKU:               item.SKU,
			Name:              item.Name,
			Unit:              item.Unit,
			CurrentStock:      item.CurrentStock,
			MinStock:          item.MinStock,
			SuggestedOrderQty: suggested,
			EstimatedCost:     suggested.Mul(item.UnitCost),
		})
	}

	// Mayor déficit primero (los negativos encabezan la lista).
	sort.Slice(out, func(i, j int) bool {
		di := out[i].MinStock.Sub(out[i].CurrentStock)
		dj := out[j].MinStock.Sub(out[j].CurrentStock)
		return di.GreaterThan(dj)
	})
	return out, nil
}
