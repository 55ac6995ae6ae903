package queries

import (
	"context"
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrGetCatalogItemQueryIsNotConstructed = errors.New(
	"GetCatalogItemQuery must be created via NewGetCatalogItemQuery constructor",
)

// GetCatalogItemQuery reads one visible catalog item.
type GetCatalogItemQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCatalogItemQuery(id kernel.UUID) (GetCatalogItemQuery, error) {
	if err := id.Validate(); err != nil {
		return GetCatalogItemQuery{}, err
	}
	return GetCatalogItemQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCatalogItemQuery) Validate() error {
	return q.guard.Validate(ErrGetCatalogItemQueryIsNotConstructed)
}

func (q GetCatalogItemQuery) ID() kernel.UUID {
	return q.id
}

type GetCatalogItemQueryHandler struct {
	catalog CatalogReader
}

func NewGetCatalogItemQueryHandler(catalog CatalogReader) GetCatalogItemQueryHandler {
	return GetCatalogItemQueryHandler{catalog: catalog}
}

// Handle returns ObjectNotFoundError for absent and deleted items alike.
func (h GetCatalogItemQueryHandler) Handle(ctx context.Context, query GetCatalogItemQuery) (CatalogItemView, error) {
	if err := query.Validate(); err != nil {
		return CatalogItemView{}, err
	}
	return h.catalog.GetVisibleItem(ctx, query.ID())
}
