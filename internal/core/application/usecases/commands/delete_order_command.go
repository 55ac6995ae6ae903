package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand is the administrative soft delete of a printing.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	printingID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(actor kernel.Actor, printingID kernel.UUID) (DeleteOrderCommand, error) {
	if err := errors.Join(actor.ID().Validate(), printingID.Validate()); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		actor:      actor,
		printingID: printingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DeleteOrderCommand) PrintingID() kernel.UUID {
	return c.printingID
}
