package customers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

// CustomerUseCase administra el padrón de clientes de la tienda. Los contadores
// de lealtad los escriben el motor de órdenes y el ledger de puntos, nunca este
// caso de uso.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create registra un cliente. El teléfono es único por tienda.
func (uc *CustomerUseCase) Create(ctx context.Context, storeID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customerRepo.GetByStoreAndPhone(storeID, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la tienda.
func (uc *CustomerUseCase) GetByID(ctx context.Context, storeID, customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.loadCustomer(storeID, customerID)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByPhone busca un cliente por teléfono, el identificador natural en caja.
func (uc *CustomerUseCase) GetByPhone(ctx context.Context, storeID, phone string) (*dto.CustomerResponse, error) {
	if phone == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByStoreAndPhone(storeID, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// ListByStore lista los clientes de la tienda.
func (uc *CustomerUseCase) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.customerRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update modifica los datos de contacto. No toca puntos ni contadores de canal.
func (uc *CustomerUseCase) Update(ctx context.Context, storeID, customerID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.loadCustomer(storeID, customerID)
	if err != nil {
		return nil, err
	}
	if in.Phone != customer.Phone {
		existing, err := uc.customerRepo.GetByStoreAndPhone(storeID, in.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) loadCustomer(storeID, customerID string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                 c.ID,
		StoreID:            c.StoreID,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		LoyaltyPoints:      c.LoyaltyPoints,
		PickupSalesCount:   c.PickupSalesCount,
		DeliverySalesCount: c.DeliverySalesCount,
	}
}
