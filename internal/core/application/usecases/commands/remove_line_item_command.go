package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrRemoveLineItemCommandIsNotConstructed = errors.New(
	"RemoveLineItemCommand must be created via NewRemoveLineItemCommand constructor",
)

// RemoveLineItemCommand drops a catalog item from the actor's draft.
type RemoveLineItemCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Actor
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveLineItemCommand(actor kernel.Actor, jobID kernel.UUID) (RemoveLineItemCommand, error) {
	if err := errors.Join(actor.ID().Validate(), jobID.Validate()); err != nil {
		return RemoveLineItemCommand{}, err
	}

	return RemoveLineItemCommand{
		actor: actor,
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveLineItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineItemCommandIsNotConstructed)
}

func (c RemoveLineItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RemoveLineItemCommand) JobID() kernel.UUID {
	return c.jobID
}
