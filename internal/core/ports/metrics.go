package ports

import "fablab/internal/core/domain/model/order"

// CartMutation names a kind of draft change for metrics.
type CartMutation string

const (
	CartItemAdded   CartMutation = "add"
	CartItemUpdated CartMutation = "update"
	CartItemRemoved CartMutation = "remove"
)

// OrderMetrics records business events. Implementations must be safe for
// concurrent use.
type OrderMetrics interface {
	TransitionRecorded(to order.Status)
	CartMutated(kind CartMutation)
}
