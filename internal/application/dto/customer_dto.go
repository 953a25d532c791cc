package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CustomerResponse representación de un cliente con sus contadores de lealtad.
type CustomerResponse struct {
	ID                 string `json:"id"`
	StoreID            string `json:"store_id"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email,omitempty"`
	LoyaltyPoints      int64  `json:"loyalty_points"`
	PickupSalesCount   int64  `json:"pickup_sales_count"`
	DeliverySalesCount int64  `json:"delivery_sales_count"`
}
