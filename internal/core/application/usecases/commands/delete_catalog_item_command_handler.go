package commands

import (
	"context"
	"log/slog"

	"fablab/internal/core/ports"
)

// DeleteCatalogItemCommandHandler hides an item from the catalog and then
// releases its image. The status change is authoritative: once committed,
// a failing asset store only produces a warning.
type DeleteCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	assets     ports.AssetStore
	logger     *slog.Logger
}

func NewDeleteCatalogItemCommandHandler(
	uowFactory CatalogUoWFactory,
	assets ports.AssetStore,
	logger *slog.Logger,
) DeleteCatalogItemCommandHandler {
	return DeleteCatalogItemCommandHandler{
		uowFactory: uowFactory,
		assets:     assets,
		logger:     logger.With("component", "DeleteCatalogItemCommandHandler"),
	}
}

// Handle returns ObjectNotFoundError if the item is absent or already deleted.
func (h DeleteCatalogItemCommandHandler) Handle(ctx context.Context, cmd DeleteCatalogItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "delete catalog item"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	item, err := getVisibleItem(ctx, repo, cmd.ItemID())
	if err != nil {
		return err
	}

	if err = item.SoftDelete(); err != nil {
		return err
	}

	if err = repo.Update(ctx, item); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if ref := item.ImageURL(); ref != "" {
		if err = h.assets.Remove(ctx, ref); err != nil {
			h.logger.WarnContext(ctx, "failed to release catalog image",
				"jobId", item.ID().String(),
				"image", ref,
				"error", err,
			)
		}
	}

	return nil
}
