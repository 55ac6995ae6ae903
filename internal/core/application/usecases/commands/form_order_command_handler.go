package commands

import (
	"context"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
)

// FormOrderCommandHandler moves a draft to Formed. The status is re-checked
// on the loaded row and the write is version-guarded, so a concurrent form or
// delete makes this call fail with ConcurrencyConflictError.
type FormOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	notifier   TransitionNotifier
}

func NewFormOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	notifier TransitionNotifier,
) FormOrderCommandHandler {
	return FormOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle returns ObjectNotFoundError for printings the actor neither owns nor
// moderates, and an errs.ProblemsError keyed by order.KeyStatusError and
// order.KeyNameError for rule violations.
func (h FormOrderCommandHandler) Handle(ctx context.Context, cmd FormOrderCommand) (*order.Printing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	printing, err := getAccessiblePrinting(ctx, repo, cmd.Actor(), cmd.PrintingID())
	if err != nil {
		return nil, err
	}

	if err = printing.Form(cmd.Name(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, printing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, printing)
	return printing, nil
}
