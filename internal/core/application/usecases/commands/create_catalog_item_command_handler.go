package commands

import (
	"context"

	"fablab/internal/core/domain/model/catalog"
)

// CreateCatalogItemCommandHandler creates visible catalog items. Staff only.
type CreateCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateCatalogItemCommandHandler(uowFactory CatalogUoWFactory) CreateCatalogItemCommandHandler {
	return CreateCatalogItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns AccessDeniedError for non-staff actors and an
// errs.ProblemsError listing every invalid field.
func (h CreateCatalogItemCommandHandler) Handle(ctx context.Context, cmd CreateCatalogItemCommand) (*catalog.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(cmd.Actor(), "create catalog item"); err != nil {
		return nil, err
	}

	item, err := catalog.NewItem(cmd.ItemID(), cmd.Name(), cmd.Description(), cmd.Price())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CatalogRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
