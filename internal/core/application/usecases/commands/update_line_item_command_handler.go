package commands

import (
	"context"

	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"
)

// UpdateLineItemResult is the line after the update; Removed is set instead
// when a non-positive quantity dropped it.
type UpdateLineItemResult struct {
	Item    order.LineItem
	Removed bool
}

// UpdateLineItemCommandHandler changes a quantity in the actor's draft.
type UpdateLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    ports.OrderMetrics
}

func NewUpdateLineItemCommandHandler(uowFactory OrderUoWFactory, metrics ports.OrderMetrics) UpdateLineItemCommandHandler {
	return UpdateLineItemCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

// Handle returns ObjectNotFoundError when the actor has no draft or the draft
// has no line for the catalog item.
func (h UpdateLineItemCommandHandler) Handle(ctx context.Context, cmd UpdateLineItemCommand) (UpdateLineItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateLineItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateLineItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	draft, err := repo.GetDraftByAuthor(ctx, cmd.Actor().ID())
	if err != nil {
		return UpdateLineItemResult{}, err
	}

	line, removed, err := draft.UpdateItem(cmd.JobID(), cmd.Quantity())
	if err != nil {
		return UpdateLineItemResult{}, err
	}

	if err = repo.Update(ctx, draft); err != nil {
		return UpdateLineItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateLineItemResult{}, err
	}

	if removed {
		h.metrics.CartMutated(ports.CartItemRemoved)
	} else {
		h.metrics.CartMutated(ports.CartItemUpdated)
	}
	return UpdateLineItemResult{Item: line, Removed: removed}, nil
}
