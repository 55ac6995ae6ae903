package queries

import (
	"context"
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"
	"fablab/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads the detail of one printing.
type GetOrderQuery struct {
	viewer kernel.Actor
	id     kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(viewer kernel.Actor, id kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(viewer.ID().Validate(), id.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{viewer: viewer, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Viewer() kernel.Actor {
	return q.viewer
}

func (q GetOrderQuery) ID() kernel.UUID {
	return q.id
}

type GetOrderQueryHandler struct {
	orders OrderReader
}

func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle hides printings the viewer neither owns nor moderates behind
// ObjectNotFoundError. Staff can read deleted printings.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (PrintingView, error) {
	if err := query.Validate(); err != nil {
		return PrintingView{}, err
	}

	view, err := h.orders.GetPrinting(ctx, query.ID())
	if err != nil {
		return PrintingView{}, err
	}

	viewer := query.Viewer()
	if !viewer.CanAccess(view.Author) {
		return PrintingView{}, errs.NewObjectNotFoundError("printingId", query.ID())
	}
	if !viewer.IsStaff() && view.Status == order.Deleted.String() {
		return PrintingView{}, errs.NewObjectNotFoundError("printingId", query.ID())
	}
	if view.LineItems == nil {
		view.LineItems = make([]LineItemView, 0)
	}
	return view, nil
}
