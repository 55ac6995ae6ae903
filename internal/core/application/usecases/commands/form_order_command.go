package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrFormOrderCommandIsNotConstructed = errors.New(
	"FormOrderCommand must be created via NewFormOrderCommand constructor",
)

// FormOrderCommand submits a draft printing for moderation under a display
// name. An empty name falls back to the one set with RenameOrderCommand.
type FormOrderCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	printingID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

func NewFormOrderCommand(actor kernel.Actor, printingID kernel.UUID, name string) (FormOrderCommand, error) {
	if err := errors.Join(actor.ID().Validate(), printingID.Validate()); err != nil {
		return FormOrderCommand{}, err
	}

	return FormOrderCommand{
		actor:      actor,
		printingID: printingID,
		name:       name,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c FormOrderCommand) Validate() error {
	return c.guard.Validate(ErrFormOrderCommandIsNotConstructed)
}

func (c FormOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c FormOrderCommand) PrintingID() kernel.UUID {
	return c.printingID
}

func (c FormOrderCommand) Name() string {
	return c.name
}
