package commands

import (
	"context"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"
	"fablab/internal/pkg/errs"
)

func requireStaff(actor kernel.Actor, action string) error {
	if err := actor.ID().Validate(); err != nil {
		return err
	}
	if !actor.IsStaff() {
		return errs.NewAccessDeniedError(action)
	}
	return nil
}

// getAccessiblePrinting hides printings the actor may not see behind NotFound,
// so their existence is not disclosed.
func getAccessiblePrinting(
	ctx context.Context,
	repo ports.OrderRepository,
	actor kernel.Actor,
	id kernel.UUID,
) (*order.Printing, error) {
	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(p.AuthorID()) {
		return nil, errs.NewObjectNotFoundError("printingId", id)
	}
	return p, nil
}

// getVisibleItem treats deleted catalog items as absent.
func getVisibleItem(ctx context.Context, repo ports.CatalogRepository, id kernel.UUID) (*catalog.Item, error) {
	item, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsVisible() {
		return nil, errs.NewObjectNotFoundError("jobId", id)
	}
	return item, nil
}
