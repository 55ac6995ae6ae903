package commands

import (
	"context"
)

// DeleteOrderCommandHandler overwrites the status with Deleted from any
// status. Deleting a deleted printing succeeds without writing.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "delete printing"); err != nil {
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
	printing, err := repo.Get(ctx, cmd.PrintingID())
	if err != nil {
		return err
	}

	if !printing.SoftDelete() {
		return nil
	}

	if err = repo.Update(ctx, printing); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, printing)
	return nil
}
