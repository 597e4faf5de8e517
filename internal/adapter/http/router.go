package http

import (
	"github.com/MAKHFIRAT2408/food/internal/adapter/http/middleware"
	"github.com/MAKHFIRAT2408/food/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cart *CartHandler, orders *OrderHandler, catalog *CatalogHandler, tokens *TokenHandler, auth *middleware.Auth) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", tokens.IssueToken)

	v1 := r.Group("/v1")
	{
		// public catalog reads
		v1.GET("/restaurants", catalog.ListRestaurants)
		v1.GET("/restaurants/:id", catalog.GetRestaurant)
		v1.GET("/dishes", catalog.ListDishes)
		v1.GET("/dishes/:id", catalog.GetDish)
	}

	authed := r.Group("/v1", auth.Authenticate())
	{
		authed.GET("/cart", cart.GetCart)
		authed.POST("/cart/items", cart.AddItem)
		authed.DELETE("/cart/items/:dishId", cart.RemoveItem)
		authed.DELETE("/cart", cart.ClearCart)
		authed.POST("/checkout", cart.Checkout)

		authed.GET("/orders/mine", orders.ListMine)
		authed.GET("/orders/available-for-delivery", orders.ListAvailable)
		authed.GET("/orders/my-deliveries", orders.ListMyDeliveries)
		authed.POST("/orders/:id/claim", orders.Claim)
		authed.POST("/orders/:id/mark-delivered", orders.MarkDelivered)
		authed.POST("/orders/:id/confirm-received", orders.ConfirmReceived)
	}

	return r
}
