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

type CartHandler struct {
	cart     *usecase.Cart
	checkout *usecase.Checkout
}

func NewCartHandler(cart *usecase.Cart, checkout *usecase.Checkout) *CartHandler {
	return &CartHandler{cart: cart, checkout: checkout}
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	order, err := h.cart.GetOrCreate(ctx, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

type addItemReq struct {
	DishID   int64 `json:"dishId" binding:"required"`
	Quantity int   `json:"quantity"`
}

// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	order, err := h.cart.AddLine(ctx, middleware.UserID(c), req.DishID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

// DELETE /v1/cart/items/:dishId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Param("dishId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad dish id"})
		return
	}

	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	order, err := h.cart.RemoveLine(ctx, middleware.UserID(c), dishID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	ctx, cancel := reqCtx(c, 3*time.Second)
	defer cancel()

	if err := h.cart.Clear(ctx, middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cart cleared"})
}

type checkoutReq struct {
	DeliveryAddress string `json:"deliveryAddress"`
}

// POST /v1/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.InvalidInput("delivery address is required"))
		return
	}

	ctx, cancel := reqCtx(c, 5*time.Second)
	defer cancel()

	order, err := h.checkout.Execute(ctx, middleware.UserID(c), req.DeliveryAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

func reqCtx(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}
