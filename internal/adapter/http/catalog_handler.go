package http

import (
	"net/http"
	"strconv"
	"time"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the read-only restaurant and dish views.
type CatalogHandler struct {
	catalog usecase.DishCatalog
}

func NewCatalogHandler(catalog usecase.DishCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type dishResp struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	PriceCents   int64  `json:"priceCents"`
	PhotoURL     string `json:"photoUrl,omitempty"`
}

type restaurantResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
}

// GET /v1/restaurants
func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	restaurants, err := h.catalog.ListRestaurants(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]restaurantResp, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, toRestaurantResp(&r))
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/restaurants/:id
func (h *CatalogHandler) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad restaurant id"})
		return
	}

	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	rest, err := h.catalog.GetRestaurant(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRestaurantResp(rest))
}

// GET /v1/dishes?restaurant_id=N
func (h *CatalogHandler) ListDishes(c *gin.Context) {
	var restaurantID int64
	if raw := c.Query("restaurant_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad restaurant id"})
			return
		}
		restaurantID = id
	}

	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	dishes, err := h.catalog.ListDishes(ctx, restaurantID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dishResp, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, toDishResp(&d))
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/dishes/:id
func (h *CatalogHandler) GetDish(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad dish id"})
		return
	}

	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	dish, err := h.catalog.GetDish(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDishResp(dish))
}

func toDishResp(d *domain.Dish) dishResp {
	return dishResp{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		PriceCents:   d.PriceCents,
		PhotoURL:     d.PhotoURL,
	}
}

func toRestaurantResp(r *domain.Restaurant) restaurantResp {
	return restaurantResp{ID: r.ID, Name: r.Name, Address: r.Address, Description: r.Description}
}
