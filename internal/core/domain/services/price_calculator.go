package services

import (
	"fmt"
	"math"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"
)

var _ order.Pricer = PriceCalculator{}

// PriceCalculator is a domain service implementing the pricing rule:
//
//	total = Σ lineItem.quantity × catalogItem.unitPrice
//
// It is built from the catalog items referenced by a printing as they are
// right now, so price edits made after the printing was formed are honoured.
// Deleted catalog items still price their historical line items.
//
// Example usage:
//
//	calc := services.NewPriceCalculator(items)
//	if err := printing.Resolve(moderatorID, "complete", calc, now); err != nil {
//	    return err
//	}
type PriceCalculator struct {
	prices map[kernel.UUID]kernel.Price
}

// NewPriceCalculator indexes the unit prices of items. Nil or unconstructed
// items are skipped; a line item referring to them fails in Total.
func NewPriceCalculator(items []*catalog.Item) PriceCalculator {
	prices := make(map[kernel.UUID]kernel.Price, len(items))
	for _, item := range items {
		if item.Validate() != nil {
			continue
		}
		prices[item.ID()] = item.Price()
	}
	return PriceCalculator{prices: prices}
}

// Total sums quantity × unit price over items. An empty set totals 0.
//
// Returns:
//   - ObjectNotFoundError if a line item refers to an unknown catalog item
//   - ValueIsOutOfRangeError if the sum does not fit in int64
func (c PriceCalculator) Total(items []order.LineItem) (int64, error) {
	var total int64
	for _, item := range items {
		price, ok := c.prices[item.JobID()]
		if !ok {
			return 0, errs.NewObjectNotFoundError("jobId", item.JobID())
		}

		line, err := price.Times(item.Quantity())
		if err != nil {
			return 0, err
		}
		if total > math.MaxInt64-line {
			return 0, errs.NewValueIsOutOfRangeError("total price", fmt.Sprintf("%d + %d", total, line), 0, int64(math.MaxInt64))
		}
		total += line
	}
	return total, nil
}
