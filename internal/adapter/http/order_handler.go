package http

import (
	"net/http"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

const idempotencyHeader = "X-Idempotency-Key" // prevent duplicated requests

type OrderHandler struct {
	create    *usecase.CreateOrder
	lifecycle *usecase.OrderLifecycle
	query     *usecase.OrderQuery
}

func NewOrderHandler(create *usecase.CreateOrder, lifecycle *usecase.OrderLifecycle, query *usecase.OrderQuery) *OrderHandler {
	return &OrderHandler{create: create, lifecycle: lifecycle, query: query}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in usecase.CreateOrderInput
	if !bindJSON(c, &in, "Invalid Parameters") {
		orderRejections.WithLabelValues("invalid").Inc()
		return
	}
	in.IdempotencyKey = c.GetHeader(idempotencyHeader)

	order, err := h.create.Execute(c.Request.Context(), actor(c), in)
	if err != nil {
		if usecase.IsRejection(err) {
			orderRejections.WithLabelValues(rejectionReason(err)).Inc()
		}
		writeError(c, err)
		return
	}
	ordersCreated.Inc()
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var in usecase.UpdateOrderInput
	if !bindJSON(c, &in, "Invalid status") {
		return
	}
	if err := h.lifecycle.UpdateStatus(c.Request.Context(), actor(c), c.Param("id"), in); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Order updated")
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.lifecycle.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	confirm(c, http.StatusCreated, "Order deleted")
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	groups, err := h.query.ListAll(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, groups)
}

func (h *OrderHandler) ListOwnOrders(c *gin.Context) {
	orders, err := h.query.ListOwn(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orders)
}
