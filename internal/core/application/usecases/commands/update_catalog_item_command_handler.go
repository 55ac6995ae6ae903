package commands

import (
	"context"

	"fablab/internal/core/domain/model/catalog"
)

// UpdateCatalogItemCommandHandler edits name, description or price of a
// visible item. Price changes affect every printing not yet completed.
type UpdateCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewUpdateCatalogItemCommandHandler(uowFactory CatalogUoWFactory) UpdateCatalogItemCommandHandler {
	return UpdateCatalogItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateCatalogItemCommandHandler) Handle(ctx context.Context, cmd UpdateCatalogItemCommand) (*catalog.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(cmd.Actor(), "update catalog item"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	item, err := getVisibleItem(ctx, repo, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if err = item.Update(cmd.Changes()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
