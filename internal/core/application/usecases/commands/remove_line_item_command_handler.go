package commands

import (
	"context"
	"errors"

	"fablab/internal/core/ports"
	"fablab/internal/pkg/errs"
)

// RemoveLineItemCommandHandler is idempotent: a missing draft or a missing
// line is success and writes nothing.
type RemoveLineItemCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    ports.OrderMetrics
}

func NewRemoveLineItemCommandHandler(uowFactory OrderUoWFactory, metrics ports.OrderMetrics) RemoveLineItemCommandHandler {
	return RemoveLineItemCommandHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

func (h RemoveLineItemCommandHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	draft, err := repo.GetDraftByAuthor(ctx, cmd.Actor().ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	removed, err := draft.RemoveItem(cmd.JobID())
	if err != nil || !removed {
		return err
	}

	if err = repo.Update(ctx, draft); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.CartMutated(ports.CartItemRemoved)
	return nil
}
