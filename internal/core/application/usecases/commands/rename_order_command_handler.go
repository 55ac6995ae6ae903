package commands

import (
	"context"

	"fablab/internal/core/domain/model/order"
)

// RenameOrderCommandHandler updates the display name while the printing is a draft.
type RenameOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRenameOrderCommandHandler(uowFactory OrderUoWFactory) RenameOrderCommandHandler {
	return RenameOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RenameOrderCommandHandler) Handle(ctx context.Context, cmd RenameOrderCommand) (*order.Printing, error) {
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

	if err = printing.Rename(cmd.Name()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, printing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return printing, nil
}
