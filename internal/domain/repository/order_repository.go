package repository

import "github.com/jhoicas/restopos-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
// Create y CreateItems son escrituras separadas a propósito: la cabecera puede
// quedar persistida aunque las líneas fallen (ver motor de órdenes).
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItems(items []*entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	ListByStore(storeID, status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(orderID, status string) error
}
