package http

import (
	"net/http"
	"time"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/logging"
	"github.com/gin-gonic/gin"
)

type orderResp struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	CourierID       *int64     `json:"courierId,omitempty"`
	Status          string     `json:"status"`
	DeliveryAddress string     `json:"deliveryAddress,omitempty"`
	TotalCents      int64      `json:"totalCents"`
	UserConfirmed   bool       `json:"userConfirmed"`
	CreatedAt       time.Time  `json:"createdAt"`
	Lines           []lineResp `json:"lines"`
}

type lineResp struct {
	DishID         int64 `json:"dishId"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unitPriceCents"`
}

func toOrderResp(o *domain.Order) orderResp {
	resp := orderResp{
		ID:              o.ID,
		UserID:          o.UserID,
		CourierID:       o.CourierID,
		Status:          string(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		TotalCents:      o.TotalCents,
		UserConfirmed:   o.UserConfirmed,
		CreatedAt:       o.CreatedAt,
		Lines:           []lineResp{},
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, lineResp{
			DishID:         l.DishID,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	return resp
}

func toOrderListResp(orders []domain.Order) []orderResp {
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	return out
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// unclassified is a 500 with a generic body.
func writeError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.KindInvalidState:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case domain.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error("unhandled error", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
