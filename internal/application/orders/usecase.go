package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/application/inventory"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/loyalty"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

// StockReducer descuenta stock vía el ledger. Interfaz propia para poder
// probar el motor de órdenes sin el ledger real.
type StockReducer interface {
	ReduceStock(ctx context.Context, in inventory.ReduceStockInput) (*entity.InventoryItem, error)
}

// Config parámetros de negocio del motor de órdenes.
type Config struct {
	TaxRate decimal.Decimal // IVA aplicado a líneas gravables
}

// FulfillmentUseCase orquesta el checkout: número de orden, persistencia de
// cabecera y líneas, y descuento de stock por línea vía el ledger.
//
// La operación NO es atómica a propósito: la cabecera sobrevive si las líneas
// fallan, y la orden se considera confirmada una vez insertadas las líneas;
// el descuento de stock es best-effort por línea. No agregar two-phase commit.
type FulfillmentUseCase struct {
	storeRepo    repository.StoreRepository
	itemRepo     repository.InventoryItemRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	ledger       StockReducer
	cfg          Config
}

// NewFulfillmentUseCase construye el motor de órdenes.
func NewFulfillmentUseCase(
	storeRepo repository.StoreRepository,
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	ledger StockReducer,
	cfg Config,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		storeRepo:    storeRepo,
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		cfg:          cfg,
	}
}

// CreateOrder confirma un checkout:
//  1. inserta la cabecera (si falla, aborta todo: nada más ha pasado);
//  2. inserta las líneas en lote (si falla, la cabecera queda huérfana,
//     sin delete compensatorio);
//  3. descuenta stock por línea, secuencial y best-effort: un fallo se
//     registra y el loop continúa, sin revertir descuentos previos ni la orden.
func (uc *FulfillmentUseCase) CreateOrder(ctx context.Context, storeID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Type != entity.OrderTypePickup && in.Type != entity.OrderTypeDelivery {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 || in.Discount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	// Validar artículos y completar precios (solo lectura, previo a escribir)
	itemsByID := make(map[string]*entity.InventoryItem, len(in.Items))
	for i := range in.Items {
		line := &in.Items[i]
		if line.ItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.StoreID != storeID {
			return nil, domain.ErrForbidden
		}
		itemsByID[line.ItemID] = item
		// Las líneas de recompensa conservan precio cero; las demás toman el
		// precio de venta del artículo cuando no se envía precio.
		if line.UnitPrice.IsZero() && !line.Reward && item.SalePrice != nil {
			line.UnitPrice = *item.SalePrice
		}
	}

	// Totales
	var subtotal, tax decimal.Decimal
	for _, line := range in.Items {
		lineSubtotal := line.Quantity.Mul(line.UnitPrice)
		subtotal = subtotal.Add(lineSubtotal)
		if itemsByID[line.ItemID].Taxable {
			tax = tax.Add(lineSubtotal.Mul(uc.cfg.TaxRate))
		}
	}
	total := subtotal.Add(tax).Sub(in.Discount)

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		OrderNumber:   GenerateOrderNumber(store, now),
		Type:          in.Type,
		Status:        entity.OrderStatusPending,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      in.Discount,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: "pending",
		CustomerID:    in.CustomerID,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 1) Cabecera: un fallo aquí aborta la operación completa.
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}

	// 2) Líneas en lote. Si falla, la cabecera ya quedó persistida y no se
	// borra: cabecera huérfana es un modo de fallo aceptado y documentado.
	orderItems := make([]*entity.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		orderItems = append(orderItems, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Quantity.Mul(line.UnitPrice),
		})
	}
	if err := uc.orderRepo.CreateItems(orderItems); err != nil {
		log.Warn().Err(err).
			Str("order_id", order.ID).
			Msg("cabecera persistida pero las líneas fallaron; la orden queda huérfana")
		return nil, err
	}

	// 3) Descuento de stock por línea, best-effort: la orden ya está
	// confirmada, un fallo de descuento no la revierte.
	for _, line := range orderItems {
		if _, err := uc.ledger.ReduceStock(ctx, inventory.ReduceStockInput{
			StoreID:   storeID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			Reference: order.ID,
			ActorID:   userID,
		}); err != nil {
			log.Warn().Err(err).
				Str("order_id", order.ID).
				Str("item_id", line.ItemID).
				Msg("descuento de stock falló para una línea; la orden se mantiene")
		}
	}

	return toOrderResponse(order, orderItems), nil
}

// UpdateStatus escribe el nuevo estado. No valida estados predecesores: la
// legalidad de las transiciones es asunto de la UI. Al entrar a `completed`
// otorga puntos de lealtad floor(total*0.10) si hay cliente; la operación no
// es idempotente: completar dos veces otorga puntos dos veces.
func (uc *FulfillmentUseCase) UpdateStatus(ctx context.Context, storeID, orderID, newStatus string) error {
	if !entity.ValidOrderStatus(newStatus) {
		return domain.ErrInvalidStatus
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.StoreID != storeID {
		return domain.ErrForbidden
	}
	if err := uc.orderRepo.UpdateStatus(orderID, newStatus); err != nil {
		return err
	}
	if newStatus == entity.OrderStatusCompleted && order.CustomerID != "" {
		points := loyalty.PointsForTotal(order.Total)
		if points > 0 {
			if err := uc.customerRepo.AddLoyaltyPoints(order.CustomerID, points); err != nil {
				return err
			}
		}
	}
	return nil
}

// FinalizeSale incrementa el contador de ventas del canal del cliente una vez
// cerrada la venta. Es la única escritura de esos contadores; el evaluador de
// promociones solo los lee.
func (uc *FulfillmentUseCase) FinalizeSale(ctx context.Context, storeID, orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.StoreID != storeID {
		return domain.ErrForbidden
	}
	if order.CustomerID == "" {
		return nil // venta anónima: no hay contador que mover
	}
	return uc.customerRepo.IncrementSalesCount(order.CustomerID, order.Type)
}

// RewardCheck evalúa ANTES del checkout si la venta por cerrarse califica
// para recompensa en su canal, y devuelve las opciones a ofrecer al operador.
func (uc *FulfillmentUseCase) RewardCheck(ctx context.Context, storeID, customerID, channel string) (*dto.RewardCheckResponse, error) {
	if channel != entity.OrderTypePickup && channel != entity.OrderTypeDelivery {
		return nil, domain.ErrInvalidInput
	}
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
	resp := &dto.RewardCheckResponse{
		Qualifies: loyalty.QualifiesForReward(customer, channel),
	}
	if resp.Qualifies {
		for _, opt := range loyalty.DefaultRewards {
			resp.Options = append(resp.Options, dto.RewardOptionDTO{SKU: opt.SKU, Name: opt.Name})
		}
	}
	return resp, nil
}

// GetByID devuelve una orden con sus líneas.
func (uc *FulfillmentUseCase) GetByID(ctx context.Context, storeID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// ListByStore lista órdenes de la tienda, opcionalmente filtradas por estado.
// Alimenta el tablero de órdenes que la UI refresca periódicamente.
func (uc *FulfillmentUseCase) ListByStore(ctx context.Context, storeID, status string, limit, offset int) ([]*dto.OrderResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.orderRepo.ListByStore(storeID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o, nil))
	}
	return out, nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		StoreID:       order.StoreID,
		OrderNumber:   order.OrderNumber,
		Type:          order.Type,
		Status:        order.Status,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Discount:      order.Discount,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		CustomerID:    order.CustomerID,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ItemID:    item.ItemID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
