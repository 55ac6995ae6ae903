package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrDeleteCatalogItemCommandIsNotConstructed = errors.New(
	"DeleteCatalogItemCommand must be created via NewDeleteCatalogItemCommand constructor",
)

// DeleteCatalogItemCommand soft-deletes a catalog item.
type DeleteCatalogItemCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCatalogItemCommand(actor kernel.Actor, itemID kernel.UUID) (DeleteCatalogItemCommand, error) {
	if err := errors.Join(actor.ID().Validate(), itemID.Validate()); err != nil {
		return DeleteCatalogItemCommand{}, err
	}

	return DeleteCatalogItemCommand{
		actor:  actor,
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCatalogItemCommandIsNotConstructed)
}

func (c DeleteCatalogItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DeleteCatalogItemCommand) ItemID() kernel.UUID {
	return c.itemID
}
