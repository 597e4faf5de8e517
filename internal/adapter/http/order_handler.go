package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/MAKHFIRAT2408/food/internal/adapter/http/middleware"
	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	fulfillment *usecase.Fulfillment
	queries     *usecase.Queries
}

func NewOrderHandler(fulfillment *usecase.Fulfillment, queries *usecase.Queries) *OrderHandler {
	return &OrderHandler{fulfillment: fulfillment, queries: queries}
}

// GET /v1/orders/mine
func (h *OrderHandler) ListMine(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	orders, err := h.queries.ListMyOrders(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResp(orders))
}

// GET /v1/orders/available-for-delivery
func (h *OrderHandler) ListAvailable(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	orders, err := h.queries.ListAvailableForDelivery(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResp(orders))
}

// GET /v1/orders/my-deliveries
func (h *OrderHandler) ListMyDeliveries(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	orders, err := h.queries.ListMyDeliveries(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResp(orders))
}

// POST /v1/orders/:id/claim
func (h *OrderHandler) Claim(c *gin.Context) {
	h.transition(c, h.fulfillment.Claim)
}

// POST /v1/orders/:id/mark-delivered
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	h.transition(c, h.fulfillment.MarkDelivered)
}

// POST /v1/orders/:id/confirm-received
func (h *OrderHandler) ConfirmReceived(c *gin.Context) {
	h.transition(c, h.fulfillment.ConfirmReceived)
}

func (h *OrderHandler) transition(c *gin.Context, do func(ctx context.Context, actorID, orderID int64) (*domain.Order, error)) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad order id"})
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	order, err := do(ctx, middleware.UserID(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}
