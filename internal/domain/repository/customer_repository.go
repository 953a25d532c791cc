package repository

import "github.com/jhoicas/restopos-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByStoreAndPhone(storeID, phone string) (*entity.Customer, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// AddLoyaltyPoints suma puntos al acumulado del cliente (incremento en servidor).
	AddLoyaltyPoints(customerID string, points int64) error
	// IncrementSalesCount incrementa el contador del canal (pickup | delivery).
	IncrementSalesCount(customerID, channel string) error
}
