package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrUpdateLineItemCommandIsNotConstructed = errors.New(
	"UpdateLineItemCommand must be created via NewUpdateLineItemCommand constructor",
)

// UpdateLineItemCommand sets the quantity of a line in the actor's draft.
// A quantity of zero or less removes the line.
type UpdateLineItemCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	jobID    kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateLineItemCommand(actor kernel.Actor, jobID kernel.UUID, quantity int) (UpdateLineItemCommand, error) {
	if err := errors.Join(actor.ID().Validate(), jobID.Validate()); err != nil {
		return UpdateLineItemCommand{}, err
	}

	return UpdateLineItemCommand{
		actor:    actor,
		jobID:    jobID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLineItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineItemCommandIsNotConstructed)
}

func (c UpdateLineItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateLineItemCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c UpdateLineItemCommand) Quantity() int {
	return c.quantity
}
