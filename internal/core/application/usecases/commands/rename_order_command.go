package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrRenameOrderCommandIsNotConstructed = errors.New(
	"RenameOrderCommand must be created via NewRenameOrderCommand constructor",
)

// RenameOrderCommand sets the display name of a draft printing.
type RenameOrderCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	printingID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

func NewRenameOrderCommand(actor kernel.Actor, printingID kernel.UUID, name string) (RenameOrderCommand, error) {
	if err := errors.Join(actor.ID().Validate(), printingID.Validate()); err != nil {
		return RenameOrderCommand{}, err
	}

	return RenameOrderCommand{
		actor:      actor,
		printingID: printingID,
		name:       name,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RenameOrderCommand) Validate() error {
	return c.guard.Validate(ErrRenameOrderCommandIsNotConstructed)
}

func (c RenameOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RenameOrderCommand) PrintingID() kernel.UUID {
	return c.printingID
}

func (c RenameOrderCommand) Name() string {
	return c.name
}
