package usecase

import (
	"context"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
)

// OrderRepo is the persistence port for orders and their lines. Every
// mutating call that touches lines also recomputes the stored total inside
// the same transaction, so state and total never diverge.
type OrderRepo interface {
	// FindOpenCart returns the user's in_cart order with lines, or nil when
	// the user has no open cart.
	FindOpenCart(ctx context.Context, userID int64) (*domain.Order, error)
	// CreateOpenCart inserts a fresh empty cart. The unique open-cart key
	// makes this race-safe: on a duplicate the existing cart is returned.
	CreateOpenCart(ctx context.Context, userID int64) (*domain.Order, error)
	// RefreshTotal recomputes total_cents from the current lines and
	// persists it, returning the new value.
	RefreshTotal(ctx context.Context, orderID int64) (int64, error)

	// UpsertLine increments the existing (order, dish) line by qty or
	// inserts a new line with the given price snapshot.
	UpsertLine(ctx context.Context, orderID, dishID int64, qty int, unitPriceCents int64) error
	// DeleteLine removes the whole line; domain.NotFound when absent.
	DeleteLine(ctx context.Context, orderID, dishID int64) error
	ClearLines(ctx context.Context, orderID int64) error

	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// PlaceIf moves in_cart -> placed and stores the address; false when the
	// order was not in_cart anymore.
	PlaceIf(ctx context.Context, orderID int64, address string) (bool, error)
	// ClaimIf atomically assigns the courier iff status is placed and no
	// courier is set (compare-and-swap; at most one concurrent caller wins).
	ClaimIf(ctx context.Context, orderID, courierID int64) (bool, error)
	// UpdateStatusIf is a guarded status transition; false when the current
	// status did not match from.
	UpdateStatusIf(ctx context.Context, orderID int64, from, to domain.Status) (bool, error)
	// CompleteIf moves delivered -> completed and sets the confirmed flag.
	CompleteIf(ctx context.Context, orderID int64) (bool, error)

	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAvailable(ctx context.Context) ([]domain.Order, error)
	ListByCourier(ctx context.Context, courierID int64) ([]domain.Order, error)
}

// UserDirectory resolves ids to roles. Authentication itself is external.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// DishCatalog is the read-only catalog collaborator.
type DishCatalog interface {
	GetDish(ctx context.Context, id int64) (*domain.Dish, error)
	ListDishes(ctx context.Context, restaurantID int64) ([]domain.Dish, error)
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}

// DishCache is a read-through cache in front of the catalog.
type DishCache interface {
	Get(ctx context.Context, dishID int64) (*domain.Dish, bool, error)
	Set(ctx context.Context, dish *domain.Dish) error
}

// StatusCache mirrors the latest order status for cheap reads.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID int64, status string) error
	GetStatus(ctx context.Context, orderID int64) (string, bool, error)
}

// EventPublisher emits status-changed events to the event stream.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, msg StatusChangedMsg) error
}

// DispatchQueue notifies couriers that an order is ready for pickup.
type DispatchQueue interface {
	PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error
}
