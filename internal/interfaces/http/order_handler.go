package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restopos-api/internal/application/dto"
	"github.com/jhoicas/restopos-api/internal/application/orders"
)

// OrderHandler maneja el checkout, el tablero y el ciclo de vida de órdenes (protegido).
type OrderHandler struct {
	uc *orders.FulfillmentUseCase
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(uc *orders.FulfillmentUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Confirmar checkout
// @Description  Inserta cabecera y líneas, y descuenta stock por línea best-effort.
//
//	Un fallo de descuento no revierte la orden.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "type, items, payment_method"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.Context(), GetStoreID(c), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID godoc
// @Summary      Obtener orden con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(order)
}

// List godoc
// @Summary      Tablero de órdenes
// @Description  Lista las órdenes de la tienda, opcionalmente filtradas por estado.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | preparing | ready | completed | cancelled"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByStore(c.Context(), GetStoreID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  No valida estados predecesores. Al completar otorga puntos de lealtad si hay cliente.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), GetStoreID(c), c.Params("id"), in.Status); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado", "status": in.Status})
}

// FinalizeSale godoc
// @Summary      Cerrar venta
// @Description  Incrementa el contador de ventas del canal del cliente. Venta anónima es no-op.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/finalize [post]
func (h *OrderHandler) FinalizeSale(c *fiber.Ctx) error {
	if err := h.uc.FinalizeSale(c.Context(), GetStoreID(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta cerrada"})
}

// RewardCheck godoc
// @Summary      Evaluar promoción pre-checkout
// @Description  Indica si la venta por cerrarse del cliente califica para recompensa
//
//	en el canal dado, y qué opciones ofrecer.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  true  "ID del cliente"
// @Param        channel      query  string  true  "pickup | delivery"
// @Success      200  {object}  dto.RewardCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/reward-check [get]
func (h *OrderHandler) RewardCheck(c *fiber.Ctx) error {
	resp, err := h.uc.RewardCheck(c.Context(), GetStoreID(c), c.Query("customer_id"), c.Query("channel"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}
