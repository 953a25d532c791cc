package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Create y CreateItems son escrituras independientes: el motor de órdenes
// las invoca en secuencia y acepta la cabecera huérfana como modo de fallo.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, store_id, order_number, type, status, subtotal, tax, discount, total, payment_method, payment_status, customer_id, created_by, created_at, updated_at`

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	customerID := (*string)(nil)
	if order.CustomerID != "" {
		customerID = &order.CustomerID
	}
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.StoreID, order.OrderNumber, order.Type, order.Status,
		order.Subtotal, order.Tax, order.Discount, order.Total,
		order.PaymentMethod, order.PaymentStatus, customerID, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas de la orden en lote.
func (r *OrderRepo) CreateItems(items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO order_items (id, order_id, item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range items {
		if _, err := r.q.Exec(context.Background(), query,
			item.ID, item.OrderID, item.ItemID, item.Quantity, item.UnitPrice, item.Subtotal,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de una orden.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	var customerID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.StoreID, &o.OrderNumber, &o.Type, &o.Status,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total,
		&o.PaymentMethod, &o.PaymentStatus, &customerID, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if customerID != nil {
		o.CustomerID = *customerID
	}
	return &o, nil
}

// GetItems obtiene las líneas de una orden.
func (r *OrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, item_id, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemID,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// ListByStore lista órdenes de la tienda, opcionalmente filtradas por estado.
func (r *OrderRepo) ListByStore(storeID, status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var customerID *string
		if err := rows.Scan(&o.ID, &o.StoreID, &o.OrderNumber, &o.Type, &o.Status,
			&o.Subtotal, &o.Tax, &o.Discount, &o.Total,
			&o.PaymentMethod, &o.PaymentStatus, &customerID, &o.CreatedBy,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if customerID != nil {
			o.CustomerID = *customerID
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus escribe el nuevo estado de la orden.
func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
