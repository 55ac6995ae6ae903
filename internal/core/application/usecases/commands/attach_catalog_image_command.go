package commands

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/errs"
	"fablab/internal/pkg/guard"
)

// MaxImageSize is the largest accepted catalog image in bytes.
const MaxImageSize = 10 << 20

var ErrAttachCatalogImageCommandIsNotConstructed = errors.New(
	"AttachCatalogImageCommand must be created via NewAttachCatalogImageCommand constructor",
)

// AttachCatalogImageCommand uploads an image for a catalog item. The content
// type is sniffed from the bytes; the client-declared one is not trusted.
type AttachCatalogImageCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	itemID   kernel.UUID
	filename string
	data     []byte

	guard guard.ConstructorGuard
}

func NewAttachCatalogImageCommand(
	actor kernel.Actor,
	itemID kernel.UUID,
	filename string,
	data []byte,
) (AttachCatalogImageCommand, error) {
	cmd := AttachCatalogImageCommand{
		actor:    actor,
		itemID:   itemID,
		filename: filename,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.ID().Validate(),
		itemID.Validate(),
		cmd.setData(data),
	); err != nil {
		return AttachCatalogImageCommand{}, err
	}

	return cmd, nil
}

func (c AttachCatalogImageCommand) Validate() error {
	return c.guard.Validate(ErrAttachCatalogImageCommandIsNotConstructed)
}

func (c AttachCatalogImageCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AttachCatalogImageCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AttachCatalogImageCommand) Filename() string {
	return c.filename
}

func (c AttachCatalogImageCommand) Data() []byte {
	return c.data
}

func (c *AttachCatalogImageCommand) setData(data []byte) error {
	if len(data) == 0 {
		return errs.NewValueIsRequiredError("image")
	}
	if len(data) > MaxImageSize {
		return errs.NewValueIsOutOfRangeError("image size", len(data), 1, MaxImageSize)
	}
	c.data = data
	return nil
}
