package usecase

import (
	"context"
	"strings"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/logging"
	"github.com/google/uuid"
)

// Checkout converts the user's open cart into a placed order.
type Checkout struct {
	repo     OrderRepo
	dispatch DispatchQueue
	notify   notifier
}

func NewCheckout(repo OrderRepo, dispatch DispatchQueue, events EventPublisher, statuses StatusCache) *Checkout {
	return &Checkout{repo: repo, dispatch: dispatch, notify: notifier{events: events, statuses: statuses}}
}

func (uc *Checkout) Execute(ctx context.Context, userID int64, address string) (*domain.Order, error) {
	cart, err := uc.repo.FindOpenCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Lines) == 0 || cart.ComputeTotal() <= 0 {
		return nil, domain.InvalidState("cart is empty")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domain.InvalidInput("delivery address is required")
	}

	ok, err := uc.repo.PlaceIf(ctx, cart.ID, address)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Someone raced the checkout; the cart is no longer in_cart.
		return nil, domain.InvalidState("cart was already checked out")
	}

	order, err := uc.repo.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	if uc.dispatch != nil {
		err := uc.dispatch.PublishPlaced(ctx, OrderPlacedMsg{
			EventID:         uuid.NewString(),
			OrderID:         order.ID,
			UserID:          order.UserID,
			DeliveryAddress: order.DeliveryAddress,
			TotalCents:      order.TotalCents,
		})
		if err != nil {
			logging.FromCtx(ctx).Error("dispatch publish failed", "order_id", order.ID, "err", err)
		}
	}
	uc.notify.statusChanged(ctx, order)
	return order, nil
}
