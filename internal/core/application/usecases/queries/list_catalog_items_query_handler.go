package queries

import (
	"context"
)

// ListCatalogItemsQueryHandler combines the visible catalog with the viewer's
// draft summary. The two reads are not transactional; a concurrent add may
// make the count lag by one.
type ListCatalogItemsQueryHandler struct {
	catalog CatalogReader
	orders  OrderReader
}

func NewListCatalogItemsQueryHandler(catalog CatalogReader, orders OrderReader) ListCatalogItemsQueryHandler {
	return ListCatalogItemsQueryHandler{catalog: catalog, orders: orders}
}

func (h ListCatalogItemsQueryHandler) Handle(ctx context.Context, query ListCatalogItemsQuery) (ListCatalogItemsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListCatalogItemsResponse{}, err
	}

	items, err := h.catalog.ListVisibleItems(ctx, query.NameContains())
	if err != nil {
		return ListCatalogItemsResponse{}, err
	}

	summary, err := h.orders.DraftSummary(ctx, query.Viewer().ID())
	if err != nil {
		return ListCatalogItemsResponse{}, err
	}

	if items == nil {
		items = make([]CatalogItemView, 0)
	}
	return ListCatalogItemsResponse{
		DraftID:    summary.DraftID,
		DraftCount: summary.ItemsCount,
		Items:      items,
	}, nil
}
