package usecase

import (
	"context"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
)

// Queries is the read side: order listings filtered by ownership and status.
type Queries struct {
	repo  OrderRepo
	users UserDirectory
}

func NewQueries(repo OrderRepo, users UserDirectory) *Queries {
	return &Queries{repo: repo, users: users}
}

// ListMyOrders returns the user's non-cart orders, newest first.
func (uc *Queries) ListMyOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// ListAvailableForDelivery returns placed, unassigned orders. Courier-only.
func (uc *Queries) ListAvailableForDelivery(ctx context.Context, actorID int64) ([]domain.Order, error) {
	if err := uc.requireCourier(ctx, actorID); err != nil {
		return nil, err
	}
	return uc.repo.ListAvailable(ctx)
}

// ListMyDeliveries returns the courier's active and delivered orders.
func (uc *Queries) ListMyDeliveries(ctx context.Context, courierID int64) ([]domain.Order, error) {
	if err := uc.requireCourier(ctx, courierID); err != nil {
		return nil, err
	}
	return uc.repo.ListByCourier(ctx, courierID)
}

func (uc *Queries) requireCourier(ctx context.Context, actorID int64) error {
	u, err := uc.users.GetUser(ctx, actorID)
	if err != nil {
		return err
	}
	if u.Role != domain.RoleCourier {
		return domain.Forbidden("only couriers may do this")
	}
	return nil
}
