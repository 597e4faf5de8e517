package domain

import "time"

type Status string

const (
	StatusInCart     Status = "in_cart"
	StatusPlaced     Status = "placed"
	StatusInDelivery Status = "in_delivery"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled" // reserved; no operation reaches it yet
)

// Order is the aggregate root for both the open cart and historical orders.
// Money is integer cents end to end.
type Order struct {
	ID              int64
	UserID          int64
	CourierID       *int64
	Status          Status
	DeliveryAddress string
	TotalCents      int64
	UserConfirmed   bool
	CreatedAt       time.Time
	Lines           []OrderLine
}

// OrderLine is owned exclusively by one Order. UnitPriceCents is the dish
// price captured when the line was first added and never recalculated.
type OrderLine struct {
	ID             int64
	OrderID        int64
	DishID         int64
	Quantity       int
	UnitPriceCents int64
}

// ComputeTotal returns the sum of unit_price * quantity over all lines.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}

// IsOpenCart reports whether this order is the user's open cart.
func (o *Order) IsOpenCart() bool { return o.Status == StatusInCart }

func (o *Order) AssignedTo(courierID int64) bool {
	return o.CourierID != nil && *o.CourierID == courierID
}
