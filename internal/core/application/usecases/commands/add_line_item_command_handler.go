package commands

import (
	"context"
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"
	"fablab/internal/pkg/errs"
)

// AddLineItemCommandHandler implements the cart add protocol: resolve or
// create the author's draft, then merge the item into it.
//
// Two concurrent first adds by the same author race to create the draft; the
// storage rejects the second draft with ConcurrencyConflictError, which the
// caller may retry once to land in the winner's draft.
type AddLineItemCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	metrics    ports.OrderMetrics
}

func NewAddLineItemCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	metrics ports.OrderMetrics,
) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		metrics:    metrics,
	}
}

// Handle returns the merged line item. ObjectNotFoundError is returned when
// the catalog item is absent or deleted.
func (h AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) (order.LineItem, error) {
	if err := cmd.Validate(); err != nil {
		return order.LineItem{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.LineItem{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := getVisibleItem(ctx, uow.CatalogRepository(), cmd.JobID()); err != nil {
		return order.LineItem{}, err
	}

	orderRepo := uow.OrderRepository()
	draft, created, err := h.getOrCreateDraft(ctx, orderRepo, cmd.Actor().ID())
	if err != nil {
		return order.LineItem{}, err
	}

	line, err := draft.AddItem(cmd.JobID(), cmd.Quantity())
	if err != nil {
		return order.LineItem{}, err
	}

	if created {
		err = orderRepo.Add(ctx, draft)
	} else {
		err = orderRepo.Update(ctx, draft)
	}
	if err != nil {
		return order.LineItem{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.LineItem{}, err
	}

	h.metrics.CartMutated(ports.CartItemAdded)
	return line, nil
}

// getOrCreateDraft never persists the new draft itself; created tells the
// caller to Add rather than Update.
func (h AddLineItemCommandHandler) getOrCreateDraft(
	ctx context.Context,
	repo ports.OrderRepository,
	authorID kernel.UUID,
) (*order.Printing, bool, error) {
	draft, err := repo.GetDraftByAuthor(ctx, authorID)
	if err == nil {
		return draft, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	draft, err = order.NewDraft(kernel.NewUUID(), authorID, h.clock.Now())
	if err != nil {
		return nil, false, err
	}
	return draft, true, nil
}
