package orders_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/application/inventory"
	"github.com/jhoicas/restopos-api/internal/application/orders"
	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeStoreRepo struct{ stores map[string]*entity.Store }

func (r *fakeStoreRepo) Create(s *entity.Store) error { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	return r.stores[id], nil
}
func (r *fakeStoreRepo) List(limit, offset int) ([]*entity.Store, error) { return nil, nil }

type fakeItemRepo struct{ items map[string]*entity.InventoryItem }

func (r *fakeItemRepo) Create(i *entity.InventoryItem) error { r.items[i.ID] = i; return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}
func (r *fakeItemRepo) GetByStoreAndSKU(storeID, sku string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListByStore(storeID string, limit, offset int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListBelowMinimum(storeID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) Update(i *entity.InventoryItem) error                     { return nil }
func (r *fakeItemRepo) UpdateStock(itemID string, s decimal.Decimal) error       { return nil }
func (r *fakeItemRepo) Delete(id string) error                                   { return nil }

type fakeOrderRepo struct {
	orders          map[string]*entity.Order
	items           []*entity.OrderItem
	failCreateItems error
}

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) CreateItems(items []*entity.OrderItem) error {
	if r.failCreateItems != nil {
		return r.failCreateItems
	}
	r.items = append(r.items, items...)
	return nil
}
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) { return r.orders[id], nil }
func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) ListByStore(storeID, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.StoreID == storeID && (status == "" || o.Status == status) {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

type fakeCustomerRepo struct {
	customers    map[string]*entity.Customer
	pointsAwards []int64
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByStoreAndPhone(storeID, phone string) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) AddLoyaltyPoints(customerID string, points int64) error {
	c, ok := r.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.LoyaltyPoints += points
	r.pointsAwards = append(r.pointsAwards, points)
	return nil
}
func (r *fakeCustomerRepo) IncrementSalesCount(customerID, channel string) error {
	c, ok := r.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	if channel == entity.OrderTypeDelivery {
		c.DeliverySalesCount++
	} else {
		c.PickupSalesCount++
	}
	return nil
}

// fakeReducer registra las reducciones y puede fallar para item ids marcados.
type fakeReducer struct {
	calls  []inventory.ReduceStockInput
	failOn map[string]error
}

func (f *fakeReducer) ReduceStock(_ context.Context, in inventory.ReduceStockInput) (*entity.InventoryItem, error) {
	f.calls = append(f.calls, in)
	if err, ok := f.failOn[in.ItemID]; ok {
		return nil, err
	}
	return &entity.InventoryItem{ID: in.ItemID}, nil
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func price(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

type fixture struct {
	uc        *orders.FulfillmentUseCase
	orderRepo *fakeOrderRepo
	custRepo  *fakeCustomerRepo
	reducer   *fakeReducer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storeRepo := &fakeStoreRepo{stores: map[string]*entity.Store{
		"store-1": {ID: "store-1", Name: "Central Kitchen", Active: true},
	}}
	itemRepo := &fakeItemRepo{items: map[string]*entity.InventoryItem{
		"taco": {ID: "taco", StoreID: "store-1", Name: "Taco pastor", Unit: "pz",
			SalePrice: price("25"), Taxable: true, Active: true},
		"agua": {ID: "agua", StoreID: "store-1", Name: "Agua fresca", Unit: "pz",
			SalePrice: price("18"), Taxable: false, Active: true},
	}}
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	custRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cli-1": {ID: "cli-1", StoreID: "store-1", Name: "Ana", PickupSalesCount: 4},
	}}
	reducer := &fakeReducer{failOn: map[string]error{}}
	uc := orders.NewFulfillmentUseCase(storeRepo, itemRepo, orderRepo, custRepo, reducer,
		orders.Config{TaxRate: d("0.16")})
	return &fixture{uc: uc, orderRepo: orderRepo, custRepo: custRepo, reducer: reducer}
}

// ──────────────────────────────────────────────────────────────────────────────
// Número de orden
// ──────────────────────────────────────────────────────────────────────────────

// "Central Kitchen" el 2025-03-07 produce CEN-250307-### (sufijo de 3 dígitos).
func TestGenerateOrderNumber_Formato(t *testing.T) {
	store := &entity.Store{Name: "Central Kitchen"}
	date := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	re := regexp.MustCompile(`^CEN-250307-\d{3}$`)
	for i := 0; i < 20; i++ {
		num := orders.GenerateOrderNumber(store, date)
		assert.Regexp(t, re, num)
	}
}

func TestGenerateOrderNumber_PrefijoExplicito(t *testing.T) {
	store := &entity.Store{Name: "Central Kitchen", Prefix: "CK"}
	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Regexp(t, `^CK-251231-\d{3}$`, orders.GenerateOrderNumber(store, date))
}

func TestGenerateOrderNumber_NombreCorto(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Regexp(t, `^AB-250102-\d{3}$`,
		orders.GenerateOrderNumber(&entity.Store{Name: "ab"}, date))
	assert.Regexp(t, `^ORD-250102-\d{3}$`,
		orders.GenerateOrderNumber(&entity.Store{Name: "123"}, date))
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

// N líneas producen exactamente 1 cabecera, N líneas y N descuentos de stock
// referenciando el id de la orden.
func TestCreateOrder_Confirmada(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateOrder(context.Background(), "store-1", "u1", dto.CreateOrderRequest{
		Type:          entity.OrderTypePickup,
		PaymentMethod: "cash",
		Items: []dto.OrderItemRequest{
			{ItemID: "taco", Quantity: d("3")},
			{ItemID: "agua", Quantity: d("2")},
		},
	})
	require.NoError(t, err)

	assert.Len(t, f.orderRepo.orders, 1)
	assert.Len(t, f.orderRepo.items, 2)
	require.Len(t, f.reducer.calls, 2)
	for _, call := range f.reducer.calls {
		assert.Equal(t, resp.ID, call.Reference, "cada descuento referencia la orden")
		assert.Equal(t, "u1", call.ActorID)
	}

	// taco: 3*25 = 75 gravable; agua: 2*18 = 36 exenta
	assert.True(t, d("111").Equal(resp.Subtotal), "subtotal %s", resp.Subtotal)
	assert.True(t, d("12").Equal(resp.Tax), "IVA solo sobre gravables: %s", resp.Tax)
	assert.True(t, d("123").Equal(resp.Total))
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Regexp(t, `^CEN-\d{6}-\d{3}$`, resp.OrderNumber)
}

// Un fallo de descuento a mitad del loop no revierte descuentos previos ni la
// orden: el error se traga y el loop continúa.
func TestCreateOrder_DescuentoFallaNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.reducer.failOn["taco"] = errors.New("timeout del store")

	resp, err := f.uc.CreateOrder(context.Background(), "store-1", "u1", dto.CreateOrderRequest{
		Type:          entity.OrderTypeDelivery,
		PaymentMethod: "card",
		Items: []dto.OrderItemRequest{
			{ItemID: "taco", Quantity: d("1")},
			{ItemID: "agua", Quantity: d("1")},
		},
	})
	require.NoError(t, err, "la orden se confirma aunque un descuento falle")
	assert.NotNil(t, resp)

	assert.Len(t, f.reducer.calls, 2, "el loop continúa tras el fallo")
	assert.Len(t, f.orderRepo.orders, 1)
	assert.Len(t, f.orderRepo.items, 2, "las filas creadas no se borran")
}

// Si las líneas fallan, la cabecera queda huérfana (sin delete compensatorio)
// y no se intenta ningún descuento.
func TestCreateOrder_LineasFallanCabeceraQueda(t *testing.T) {
	f := newFixture(t)
	f.orderRepo.failCreateItems = errors.New("batch insert falló")

	_, err := f.uc.CreateOrder(context.Background(), "store-1", "u1", dto.CreateOrderRequest{
		Type:          entity.OrderTypePickup,
		PaymentMethod: "cash",
		Items:         []dto.OrderItemRequest{{ItemID: "taco", Quantity: d("1")}},
	})
	require.Error(t, err)

	assert.Len(t, f.orderRepo.orders, 1, "la cabecera huérfana persiste")
	assert.Empty(t, f.orderRepo.items)
	assert.Empty(t, f.reducer.calls, "sin líneas no hay descuentos")
}

// Las líneas de recompensa conservan precio cero y no aportan al total.
func TestCreateOrder_LineaRecompensaPrecioCero(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateOrder(context.Background(), "store-1", "u1", dto.CreateOrderRequest{
		Type:          entity.OrderTypePickup,
		PaymentMethod: "cash",
		CustomerID:    "cli-1",
		Items: []dto.OrderItemRequest{
			{ItemID: "agua", Quantity: d("1")},
			{ItemID: "taco", Quantity: d("1"), Reward: true},
		},
	})
	require.NoError(t, err)

	assert.True(t, d("18").Equal(resp.Subtotal), "la recompensa no suma al subtotal")
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[1].UnitPrice.IsZero(), "línea de recompensa a precio cero")
	assert.Len(t, f.reducer.calls, 2, "la recompensa sí descuenta stock")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, "store-1", "u1", dto.CreateOrderRequest{
		Type: "dine-in", Items: []dto.OrderItemRequest{{ItemID: "taco", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = f.uc.CreateOrder(ctx, "store-1", "u1", dto.CreateOrderRequest{
		Type: entity.OrderTypePickup,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.uc.CreateOrder(ctx, "store-1", "u1", dto.CreateOrderRequest{
		Type:  entity.OrderTypePickup,
		Items: []dto.OrderItemRequest{{ItemID: "no-existe", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus y lealtad
// ──────────────────────────────────────────────────────────────────────────────

func completedOrder(f *fixture, total, customerID string) *entity.Order {
	o := &entity.Order{
		ID: "ord-1", StoreID: "store-1", Type: entity.OrderTypePickup,
		Status: entity.OrderStatusReady, Total: d(total), CustomerID: customerID,
	}
	f.orderRepo.orders[o.ID] = o
	return o
}

// Al entrar a completed se otorgan floor(total*0.10) puntos.
func TestUpdateStatus_CompletadaOtorgaPuntos(t *testing.T) {
	f := newFixture(t)
	completedOrder(f, "259.90", "cli-1")

	err := f.uc.UpdateStatus(context.Background(), "store-1", "ord-1", entity.OrderStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, []int64{25}, f.custRepo.pointsAwards)
	assert.Equal(t, int64(25), f.custRepo.customers["cli-1"].LoyaltyPoints)
	assert.Equal(t, entity.OrderStatusCompleted, f.orderRepo.orders["ord-1"].Status)
}

// Repetir la transición a completed vuelve a otorgar: el contrato no guarda
// idempotencia y el doble abono es comportamiento especificado.
func TestUpdateStatus_DobleCompletadaDobleAbono(t *testing.T) {
	f := newFixture(t)
	completedOrder(f, "100", "cli-1")
	ctx := context.Background()

	require.NoError(t, f.uc.UpdateStatus(ctx, "store-1", "ord-1", entity.OrderStatusCompleted))
	require.NoError(t, f.uc.UpdateStatus(ctx, "store-1", "ord-1", entity.OrderStatusCompleted))

	assert.Equal(t, []int64{10, 10}, f.custRepo.pointsAwards)
	assert.Equal(t, int64(20), f.custRepo.customers["cli-1"].LoyaltyPoints)
}

func TestUpdateStatus_SinClienteNoOtorga(t *testing.T) {
	f := newFixture(t)
	completedOrder(f, "500", "")

	require.NoError(t, f.uc.UpdateStatus(context.Background(), "store-1", "ord-1", entity.OrderStatusCompleted))
	assert.Empty(t, f.custRepo.pointsAwards)
}

// Totales bajo 10 redondean a cero puntos y el abono se omite.
func TestUpdateStatus_CeroPuntosSeOmite(t *testing.T) {
	f := newFixture(t)
	completedOrder(f, "9.99", "cli-1")

	require.NoError(t, f.uc.UpdateStatus(context.Background(), "store-1", "ord-1", entity.OrderStatusCompleted))
	assert.Empty(t, f.custRepo.pointsAwards, "abonos de cero puntos no se registran")
}

// Cualquier estado conocido es asignable desde cualquier otro: la validación
// de predecesores es asunto de la UI, no del motor.
func TestUpdateStatus_SinValidacionDePredecesores(t *testing.T) {
	f := newFixture(t)
	o := completedOrder(f, "50", "")
	o.Status = entity.OrderStatusCompleted

	err := f.uc.UpdateStatus(context.Background(), "store-1", "ord-1", entity.OrderStatusPending)
	require.NoError(t, err, "regresar a pending es permitido por el motor")
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newFixture(t)
	completedOrder(f, "50", "")

	err := f.uc.UpdateStatus(context.Background(), "store-1", "ord-1", "entregada")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// FinalizeSale y RewardCheck
// ──────────────────────────────────────────────────────────────────────────────

// FinalizeSale incrementa solo el contador del canal de la orden.
func TestFinalizeSale_IncrementaContadorDelCanal(t *testing.T) {
	f := newFixture(t)
	o := completedOrder(f, "80", "cli-1")
	o.Type = entity.OrderTypeDelivery

	require.NoError(t, f.uc.FinalizeSale(context.Background(), "store-1", "ord-1"))

	c := f.custRepo.customers["cli-1"]
	assert.Equal(t, int64(1), c.DeliverySalesCount)
	assert.Equal(t, int64(4), c.PickupSalesCount, "el otro canal no se toca")
}

func TestFinalizeSale_VentaAnonima(t *testing.T) {
	f := newFixture(t)
	completedOrder(f, "80", "")

	assert.NoError(t, f.uc.FinalizeSale(context.Background(), "store-1", "ord-1"))
}

// cli-1 lleva 4 ventas pickup: la que viene sería la 5ª y califica.
func TestRewardCheck_Califica(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.RewardCheck(context.Background(), "store-1", "cli-1", entity.OrderTypePickup)
	require.NoError(t, err)
	assert.True(t, resp.Qualifies)
	assert.NotEmpty(t, resp.Options, "al calificar se ofrecen las opciones del catálogo")
}

func TestRewardCheck_NoCalifica(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.RewardCheck(context.Background(), "store-1", "cli-1", entity.OrderTypeDelivery)
	require.NoError(t, err)
	assert.False(t, resp.Qualifies, "0 ventas delivery: la próxima es la 1ª")
	assert.Empty(t, resp.Options)
}
