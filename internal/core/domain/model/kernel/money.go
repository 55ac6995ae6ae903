package kernel

import (
	"fmt"
	"math"

	"fablab/internal/pkg/errs"
	"fablab/internal/pkg/guard"
)

var (
	ErrPriceIsNotConstructed    = errs.NewValueIsRequiredError("price must be created via NewPrice")
	ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("quantity must be created via NewQuantity")
)

// Price is a positive amount in minor currency units.
type Price struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

func NewPrice(amount int64) (Price, error) {
	if amount <= 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is not greater than 0", amount))
	}
	return Price{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (p Price) Validate() error {
	return p.guard.Validate(ErrPriceIsNotConstructed)
}

func (p Price) Amount() int64 {
	return p.amount
}

// Times returns the price of qty units. Overflow is reported rather than wrapped.
func (p Price) Times(qty Quantity) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := qty.Validate(); err != nil {
		return 0, err
	}
	if p.amount > math.MaxInt64/int64(qty.value) {
		return 0, errs.NewValueIsOutOfRangeError("line total", fmt.Sprintf("%d x %d", p.amount, qty.value), 1, int64(math.MaxInt64))
	}
	return p.amount * int64(qty.value), nil
}

// Quantity is a positive count of units on a line item.
type Quantity struct { //nolint:recvcheck //using for validation
	value int
	guard guard.ConstructorGuard
}

// DefaultQuantity is used when a client adds an item without saying how many.
const DefaultQuantity = 1

func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", value))
	}
	return Quantity{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

func (q Quantity) Value() int {
	return q.value
}

// Plus merges two quantities, used when the same item is added twice.
func (q Quantity) Plus(other Quantity) (Quantity, error) {
	if q.value > math.MaxInt32-other.value {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", q.value+other.value, 1, math.MaxInt32)
	}
	return NewQuantity(q.value + other.value)
}
