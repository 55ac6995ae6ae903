package ports

import (
	"context"

	"fablab/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed printing transitions.
// Delivery is best effort; callers log failures and carry on.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.ChangedEvent) error
}
