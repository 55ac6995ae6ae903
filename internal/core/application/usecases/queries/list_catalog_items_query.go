package queries

import (
	"errors"
	"strings"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrListCatalogItemsQueryIsNotConstructed = errors.New(
	"ListCatalogItemsQuery must be created via NewListCatalogItemsQuery constructor",
)

// ListCatalogItemsQuery lists the visible catalog together with the viewer's
// draft summary, as the catalog page shows the cart badge.
//
// Example:
//
//	query, _ := NewListCatalogItemsQuery(viewer, "print")
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d items, %d in cart\n", len(resp.Items), resp.DraftCount)
type ListCatalogItemsQuery struct {
	viewer       kernel.Actor
	nameContains string

	guard guard.ConstructorGuard
}

func NewListCatalogItemsQuery(viewer kernel.Actor, nameContains string) (ListCatalogItemsQuery, error) {
	if err := viewer.ID().Validate(); err != nil {
		return ListCatalogItemsQuery{}, err
	}
	return ListCatalogItemsQuery{
		viewer:       viewer,
		nameContains: strings.TrimSpace(nameContains),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListCatalogItemsQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogItemsQueryIsNotConstructed)
}

func (q ListCatalogItemsQuery) Viewer() kernel.Actor {
	return q.viewer
}

func (q ListCatalogItemsQuery) NameContains() string {
	return q.nameContains
}

// ListCatalogItemsResponse mirrors the catalog page payload.
type ListCatalogItemsResponse struct {
	DraftID    *kernel.UUID      `json:"draft_id"`
	DraftCount int               `json:"draft_count"`
	Items      []CatalogItemView `json:"jobs"`
}
