package commands

import (
	"context"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/domain/services"
)

// ResolveOrderCommandHandler completes or rejects a formed printing.
//
// Workflow:
//   - Only staff may resolve
//   - The catalog items of every line are read inside the transaction, so the
//     total reflects prices as of now
//   - The write is guarded by the printing version; of two moderators racing
//     on the same printing exactly one commits, the other gets
//     ConcurrencyConflictError (or a status problem if it read after the commit)
type ResolveOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	notifier   TransitionNotifier
}

func NewResolveOrderCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	notifier TransitionNotifier,
) ResolveOrderCommandHandler {
	return ResolveOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h ResolveOrderCommandHandler) Handle(ctx context.Context, cmd ResolveOrderCommand) (*order.Printing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(cmd.Actor(), "resolve printing"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	printing, err := orderRepo.Get(ctx, cmd.PrintingID())
	if err != nil {
		return nil, err
	}

	lines := printing.Items()
	jobIDs := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		jobIDs = append(jobIDs, line.JobID())
	}
	items, err := uow.CatalogRepository().GetMany(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	calc := services.NewPriceCalculator(items)
	if err = printing.Resolve(cmd.Actor().ID(), cmd.Decision(), calc, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, printing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, printing)
	return printing, nil
}
