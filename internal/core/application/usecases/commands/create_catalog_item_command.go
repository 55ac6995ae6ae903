package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/guard"
)

var ErrCreateCatalogItemCommandIsNotConstructed = errors.New(
	"CreateCatalogItemCommand must be created via NewCreateCatalogItemCommand constructor",
)

// CreateCatalogItemCommand adds a new service to the catalog. Name and price
// are validated by the catalog aggregate so that every field problem is
// reported at once.
//
// Example:
//
//	cmd, err := NewCreateCatalogItemCommand(staff, kernel.NewUUID(), "3D printing", "PLA", 700)
//	if err != nil {
//	    return err
//	}
//	item, err := handler.Handle(ctx, cmd)
type CreateCatalogItemCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	itemID      kernel.UUID
	name        string
	description string
	price       int64

	guard guard.ConstructorGuard
}

func NewCreateCatalogItemCommand(
	actor kernel.Actor,
	itemID kernel.UUID,
	name, description string,
	price int64,
) (CreateCatalogItemCommand, error) {
	if err := errors.Join(actor.ID().Validate(), itemID.Validate()); err != nil {
		return CreateCatalogItemCommand{}, err
	}

	return CreateCatalogItemCommand{
		actor:       actor,
		itemID:      itemID,
		name:        name,
		description: description,
		price:       price,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateCatalogItemCommandIsNotConstructed)
}

func (c CreateCatalogItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateCatalogItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c CreateCatalogItemCommand) Name() string {
	return c.name
}

func (c CreateCatalogItemCommand) Description() string {
	return c.description
}

func (c CreateCatalogItemCommand) Price() int64 {
	return c.price
}
