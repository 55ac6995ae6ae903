package order

import (
	"errors"

	"fablab/internal/core/domain/model/kernel"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created through NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem pairs a catalog item with a quantity inside one printing.
// A printing holds at most one line item per catalog item.
type LineItem struct {
	jobID    kernel.UUID
	quantity kernel.Quantity

	isConstructed bool
}

func NewLineItem(jobID kernel.UUID, quantity kernel.Quantity) (LineItem, error) {
	if err := errors.Join(jobID.Validate(), quantity.Validate()); err != nil {
		return LineItem{}, err
	}
	return LineItem{jobID: jobID, quantity: quantity, isConstructed: true}, nil
}

func (l LineItem) Validate() error {
	if !l.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// JobID is the referenced catalog item.
func (l LineItem) JobID() kernel.UUID {
	return l.jobID
}

func (l LineItem) Quantity() kernel.Quantity {
	return l.quantity
}
