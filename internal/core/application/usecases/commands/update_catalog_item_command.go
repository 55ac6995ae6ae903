package commands

import (
	"errors"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrUpdateCatalogItemCommandIsNotConstructed = errors.New(
	"UpdateCatalogItemCommand must be created via NewUpdateCatalogItemCommand constructor",
)

// UpdateCatalogItemCommand is a partial update of a visible catalog item.
type UpdateCatalogItemCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	itemID  kernel.UUID
	changes catalog.Changes

	guard guard.ConstructorGuard
}

func NewUpdateCatalogItemCommand(
	actor kernel.Actor,
	itemID kernel.UUID,
	changes catalog.Changes,
) (UpdateCatalogItemCommand, error) {
	if err := errors.Join(actor.ID().Validate(), itemID.Validate()); err != nil {
		return UpdateCatalogItemCommand{}, err
	}

	return UpdateCatalogItemCommand{
		actor:   actor,
		itemID:  itemID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCatalogItemCommandIsNotConstructed)
}

func (c UpdateCatalogItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateCatalogItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c UpdateCatalogItemCommand) Changes() catalog.Changes {
	return c.changes
}
