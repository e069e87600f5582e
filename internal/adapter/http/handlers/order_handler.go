package handlers

import (
	"errors"
	"log"
	"net/http"

	request "orcamentos/internal/adapter/http/dto/request"
	response "orcamentos/internal/adapter/http/dto/response"
	"orcamentos/internal/domain/entities"
	"orcamentos/internal/domain/pricing"
	"orcamentos/internal/usecase"
	"orcamentos/internal/usecase/interfaces"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles HTTP requests for orders (orçamentos).
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.CreateOrderRequest  true  "Order"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		writeError(c, errInvalidDate)
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		log.Printf("[order][handler] create failed client_id=%s err=%v", payload.ClientID, err)
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// UpdateOrder godoc
// @Summary      Update an order (fields left out are kept)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id     path      string                      true  "Order ID"
// @Param        order  body      request.UpdateOrderRequest  true  "Changes"
// @Success      200    {object}  response.OrderResponse
// @Failure      404    {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var payload request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		writeError(c, errInvalidDate)
		return
	}

	order, err := h.usecase.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// UpdateOrderStatus godoc
// @Summary      Change the status of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path      string                            true  "Order ID"
// @Param        status  body      request.UpdateOrderStatusRequest  true  "Status"
// @Success      200     {object}  response.OrderResponse
// @Security     Bearer
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.OrderStatus(payload.Status))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// DeleteOrder godoc
// @Summary      Delete an order (soft)
// @Tags         orders
// @Param        id  path  string  true  "Order ID"
// @Success      204
// @Security     Bearer
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAllOrders godoc
// @Summary      Delete every order (soft, admin only)
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.DeletedCountResponse
// @Security     Bearer
// @Router       /orders [delete]
func (h *OrderHandler) DeleteAllOrders(c *gin.Context) {
	n, err := h.usecase.DeleteAll(c.Request.Context())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.DeletedCountResponse{Deleted: n})
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id  path      string  true  "Order ID"
// @Success      200 {object}  response.OrderResponse
// @Security     Bearer
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListOrders godoc
// @Summary      List orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200 {array}  response.OrderResponse
// @Security     Bearer
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrOrderClientRequired):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvalidOrderStatus):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_STATUS", "Status de orçamento inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Orçamento não encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Cliente não encontrado", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Serviço não encontrado", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrSubServiceNotFound):
		return pkg.NewDomainErrorSimple("SUB_SERVICE_NOT_FOUND", "Subserviço não encontrado", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrFactorNotFound):
		return pkg.NewDomainErrorSimple("FACTOR_NOT_FOUND", "Fator não encontrado", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrFactorRequiresSub), errors.Is(err, pricing.ErrFactorNotAllowed):
		return pkg.NewDomainErrorSimple("FACTOR_NOT_ALLOWED", "Fator não permitido para este item", http.StatusUnprocessableEntity)
	case errors.Is(err, pricing.ErrClientFactorMissing), errors.Is(err, pricing.ErrFactorSubItemNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_FACTOR_MISSING", "Cliente sem valor definido para o fator", http.StatusUnprocessableEntity)
	case errors.Is(err, pricing.ErrNegativeQuantity):
		return pkg.NewDomainErrorSimple("INVALID_QUANTITY", "Quantidade não pode ser negativa", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrNegativeUnitPrice):
		return pkg.NewDomainErrorSimple("INVALID_UNIT_PRICE", "Valor unitário não pode ser negativo", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrNegativeDiscount):
		return pkg.NewDomainErrorSimple("INVALID_DISCOUNT", "Desconto não pode ser negativo", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrDiscountExceedsSubtotal):
		return pkg.NewDomainErrorSimple("DISCOUNT_EXCEEDS_SUBTOTAL", "Desconto maior que o subtotal", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDuplicateOrderItem):
		return pkg.NewDomainErrorSimple("DUPLICATE_ORDER_ITEM", "Item do orçamento repetido", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrItemNotFound):
		return pkg.NewDomainErrorSimple("ORDER_ITEM_NOT_FOUND", "Item do orçamento não encontrado", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrSequenceConflict):
		return pkg.NewDomainError("SEQUENCE_CONFLICT", "Não foi possível gerar o código, tente novamente", err, http.StatusConflict)
	case errors.Is(err, interfaces.ErrAlreadyExists):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_EXISTS", "Orçamento já existe", http.StatusConflict)
	default:
		return internalError(err)
	}
}
