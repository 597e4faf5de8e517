package usecase

import (
	"context"
	"time"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/logging"
	"github.com/google/uuid"
)

// notifier fans a committed transition out to the event stream and the
// status cache. Best-effort: the database is the source of truth and a
// failed publish never rolls anything back.
type notifier struct {
	events   EventPublisher
	statuses StatusCache
}

func (n notifier) statusChanged(ctx context.Context, order *domain.Order) {
	if n.events != nil {
		err := n.events.PublishStatusChanged(ctx, StatusChangedMsg{
			EventID:    uuid.NewString(),
			OrderID:    order.ID,
			UserID:     order.UserID,
			CourierID:  order.CourierID,
			Status:     string(order.Status),
			TotalCents: order.TotalCents,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			logging.FromCtx(ctx).Error("status event publish failed",
				"order_id", order.ID, "status", order.Status, "err", err)
		}
	}
	if n.statuses != nil {
		_ = n.statuses.SetStatus(ctx, order.ID, string(order.Status))
	}
}
