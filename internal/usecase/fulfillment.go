package usecase

import (
	"context"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
)

// Fulfillment drives the delivery half of the order lifecycle:
// placed -> in_delivery -> delivered -> completed. Every transition is a
// guarded conditional update in the repo, so concurrent actors can never
// double-apply one.
type Fulfillment struct {
	repo   OrderRepo
	users  UserDirectory
	notify notifier
}

func NewFulfillment(repo OrderRepo, users UserDirectory, events EventPublisher, statuses StatusCache) *Fulfillment {
	return &Fulfillment{repo: repo, users: users, notify: notifier{events: events, statuses: statuses}}
}

// Claim assigns a placed, unassigned order to the acting courier. Under
// concurrent claims exactly one courier wins; losers get InvalidState.
func (uc *Fulfillment) Claim(ctx context.Context, courierID, orderID int64) (*domain.Order, error) {
	if err := uc.requireCourier(ctx, courierID); err != nil {
		return nil, err
	}
	// distinguishes a missing order from a lost race below
	if _, err := uc.repo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	ok, err := uc.repo.ClaimIf(ctx, orderID, courierID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.InvalidState("order is not available for delivery")
	}
	return uc.finish(ctx, orderID)
}

// MarkDelivered lets the assigned courier flag the order as handed over.
func (uc *Fulfillment) MarkDelivered(ctx context.Context, courierID, orderID int64) (*domain.Order, error) {
	if err := uc.requireCourier(ctx, courierID); err != nil {
		return nil, err
	}
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.AssignedTo(courierID) {
		return nil, domain.Forbidden("order is assigned to a different courier")
	}

	ok, err := uc.repo.UpdateStatusIf(ctx, orderID, domain.StatusInDelivery, domain.StatusDelivered)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.InvalidState("order is not in delivery")
	}
	return uc.finish(ctx, orderID)
}

// ConfirmReceived lets the owning customer close out a delivered order.
func (uc *Fulfillment) ConfirmReceived(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.Forbidden("order belongs to a different customer")
	}

	ok, err := uc.repo.CompleteIf(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.InvalidState("order has not been delivered yet")
	}
	return uc.finish(ctx, orderID)
}

func (uc *Fulfillment) requireCourier(ctx context.Context, actorID int64) error {
	u, err := uc.users.GetUser(ctx, actorID)
	if err != nil {
		return err
	}
	if u.Role != domain.RoleCourier {
		return domain.Forbidden("only couriers may do this")
	}
	return nil
}

func (uc *Fulfillment) finish(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	uc.notify.statusChanged(ctx, order)
	return order, nil
}
