package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrResolveOrderCommandIsNotConstructed = errors.New(
	"ResolveOrderCommand must be created via NewResolveOrderCommand constructor",
)

// ResolveOrderCommand carries a moderator decision. The raw decision string
// is validated by the printing together with its status.
type ResolveOrderCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	printingID kernel.UUID
	decision   string

	guard guard.ConstructorGuard
}

func NewResolveOrderCommand(actor kernel.Actor, printingID kernel.UUID, decision string) (ResolveOrderCommand, error) {
	if err := errors.Join(actor.ID().Validate(), printingID.Validate()); err != nil {
		return ResolveOrderCommand{}, err
	}

	return ResolveOrderCommand{
		actor:      actor,
		printingID: printingID,
		decision:   decision,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveOrderCommand) Validate() error {
	return c.guard.Validate(ErrResolveOrderCommandIsNotConstructed)
}

func (c ResolveOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ResolveOrderCommand) PrintingID() kernel.UUID {
	return c.printingID
}

func (c ResolveOrderCommand) Decision() string {
	return c.decision
}
