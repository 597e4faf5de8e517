package usecase

import "time"

// StatusChangedMsg is published to Kafka on every lifecycle transition.
type StatusChangedMsg struct {
	EventID    string    `json:"eventId"`
	OrderID    int64     `json:"orderId"`
	UserID     int64     `json:"userId"`
	CourierID  *int64    `json:"courierId,omitempty"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderPlacedMsg goes to the courier dispatch queue on checkout.
type OrderPlacedMsg struct {
	EventID         string `json:"eventId"`
	OrderID         int64  `json:"orderId"`
	UserID          int64  `json:"userId"`
	DeliveryAddress string `json:"deliveryAddress"`
	TotalCents      int64  `json:"totalCents"`
}
