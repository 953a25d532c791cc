package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, store_id, name, phone, email, loyalty_points, pickup_sales_count, delivery_sales_count, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.StoreID, customer.Name, customer.Phone, customer.Email,
		customer.LoyaltyPoints, customer.PickupSalesCount, customer.DeliverySalesCount,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.StoreID, &c.Name, &c.Phone, &c.Email,
		&c.LoyaltyPoints, &c.PickupSalesCount, &c.DeliverySalesCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// GetByStoreAndPhone obtiene un cliente por tienda y teléfono.
func (r *CustomerRepo) GetByStoreAndPhone(storeID, phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE store_id = $1 AND phone = $2`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, storeID, phone).Scan(
		&c.ID, &c.StoreID, &c.Name, &c.Phone, &c.Email,
		&c.LoyaltyPoints, &c.PickupSalesCount, &c.DeliverySalesCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return &c, nil
}

// ListByStore lista clientes de la tienda con paginación.
func (r *CustomerRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE store_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Phone, &c.Email,
			&c.LoyaltyPoints, &c.PickupSalesCount, &c.DeliverySalesCount,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto del cliente. Los contadores de
// lealtad se mueven solo con AddLoyaltyPoints e IncrementSalesCount.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, email = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// AddLoyaltyPoints suma puntos como incremento en servidor, sin leer antes.
func (r *CustomerRepo) AddLoyaltyPoints(customerID string, points int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customers SET loyalty_points = loyalty_points + $2, updated_at = now() WHERE id = $1`,
		customerID, points,
	)
	if err != nil {
		return fmt.Errorf("add loyalty points: %w", err)
	}
	return nil
}

// IncrementSalesCount incrementa el contador del canal (pickup | delivery).
func (r *CustomerRepo) IncrementSalesCount(customerID, channel string) error {
	var column string
	switch channel {
	case entity.OrderTypePickup:
		column = "pickup_sales_count"
	case entity.OrderTypeDelivery:
		column = "delivery_sales_count"
	default:
		return domain.ErrInvalidInput
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE customers SET `+column+` = `+column+` + 1, updated_at = now() WHERE id = $1`,
		customerID,
	)
	if err != nil {
		return fmt.Errorf("increment sales count: %w", err)
	}
	return nil
}
