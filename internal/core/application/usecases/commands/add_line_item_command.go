package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrAddLineItemCommandIsNotConstructed = errors.New(
	"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
)

// AddLineItemCommand puts a catalog item into the actor's draft, creating the
// draft on first use.
//
// Example:
//
//	cmd, err := NewAddLineItemCommand(actor, jobID, kernel.DefaultQuantity)
//	if err != nil {
//	    return err
//	}
//	line, err := handler.Handle(ctx, cmd)
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	jobID    kernel.UUID
	quantity kernel.Quantity

	guard guard.ConstructorGuard
}

func NewAddLineItemCommand(actor kernel.Actor, jobID kernel.UUID, quantity int) (AddLineItemCommand, error) {
	q, qErr := kernel.NewQuantity(quantity)
	if err := errors.Join(actor.ID().Validate(), jobID.Validate(), qErr); err != nil {
		return AddLineItemCommand{}, err
	}

	return AddLineItemCommand{
		actor:    actor,
		jobID:    jobID,
		quantity: q,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

func (c AddLineItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AddLineItemCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c AddLineItemCommand) Quantity() kernel.Quantity {
	return c.quantity
}
