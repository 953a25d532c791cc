package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, store_id, name, sku, unit, unit_cost, current_stock, min_stock, sale_price, taxable, active, created_at, updated_at`

// Create persiste un nuevo artículo. CurrentStock inicia en 0.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.StoreID, item.Name, item.SKU, item.Unit, item.UnitCost,
		item.CurrentStock, item.MinStock, item.SalePrice, item.Taxable, item.Active,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.StoreID, &i.Name, &i.SKU, &i.Unit, &i.UnitCost,
		&i.CurrentStock, &i.MinStock, &i.SalePrice, &i.Taxable, &i.Active,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &i, nil
}

// GetByStoreAndSKU obtiene un artículo por tienda y SKU.
func (r *InventoryItemRepo) GetByStoreAndSKU(storeID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE store_id = $1 AND sku = $2`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, storeID, sku).Scan(
		&i.ID, &i.StoreID, &i.Name, &i.SKU, &i.Unit, &i.UnitCost,
		&i.CurrentStock, &i.MinStock, &i.SalePrice, &i.Taxable, &i.Active,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by sku: %w", err)
	}
	return &i, nil
}

// ListByStore lista artículos de la tienda con paginación.
func (r *InventoryItemRepo) ListByStore(storeID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE store_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListBelowMinimum lista los artículos cuyo stock está en o por debajo del mínimo.
func (r *InventoryItemRepo) ListBelowMinimum(storeID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE store_id = $1 AND active AND current_stock <= min_stock
		ORDER BY (min_stock - current_stock) DESC`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Update actualiza los datos del artículo. No toca current_stock: eso es
// exclusivo de UpdateStock vía el ledger.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, unit = $3, unit_cost = $4, min_stock = $5, sale_price = $6,
		    taxable = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Unit, item.UnitCost, item.MinStock, item.SalePrice,
		item.Taxable, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo contador de stock. Solo debe invocarlo el ledger.
func (r *InventoryItemRepo) UpdateStock(itemID string, newStock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		itemID, newStock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *InventoryItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.StoreID, &i.Name, &i.SKU, &i.Unit, &i.UnitCost,
			&i.CurrentStock, &i.MinStock, &i.SalePrice, &i.Taxable, &i.Active,
			&i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
