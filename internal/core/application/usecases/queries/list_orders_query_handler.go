package queries

import (
	"context"
)

type ListOrdersQueryHandler struct {
	orders OrderReader
}

func NewListOrdersQueryHandler(orders OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns an empty, non-nil slice when nothing matches, including when
// the status filter names an unlisted status.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]PrintingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	if len(filter.Statuses) == 0 {
		return make([]PrintingView, 0), nil
	}

	views, err := h.orders.ListPrintings(ctx, filter)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = make([]PrintingView, 0)
	}
	return views, nil
}
