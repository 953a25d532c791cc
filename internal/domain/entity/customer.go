package entity

import "time"

// Customer representa un cliente de la tienda.
// PickupSalesCount y DeliverySalesCount son contadores monótonos por canal,
// usados solo para la cadencia de promociones; son independientes de los
// puntos de lealtad.
type Customer struct {
	ID                 string
	StoreID            string
	Name               string
	Phone              string
	Email              string
	LoyaltyPoints      int64
	PickupSalesCount   int64
	DeliverySalesCount int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
