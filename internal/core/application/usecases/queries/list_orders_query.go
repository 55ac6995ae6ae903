package queries

import (
	"errors"
	"fmt"
	"time"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"
	"fablab/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists printings visible to a viewer. Drafts and deleted
// printings are never listed; an explicit status narrows further.
type ListOrdersQuery struct {
	viewer kernel.Actor
	status *order.Status
	from   *time.Time
	to     *time.Time

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses the optional status name. Every problem with the
// parameters is reported together.
func NewListOrdersQuery(viewer kernel.Actor, status string, from, to *time.Time) (ListOrdersQuery, error) {
	q := ListOrdersQuery{viewer: viewer, from: from, to: to, guard: guard.NewConstructorGuard()}

	if err := viewer.ID().Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	problems := &errs.Problems{}
	if status != "" {
		s, err := order.ParseStatus(status)
		problems.Add("status", err)
		q.status = &s
	}
	if from != nil && to != nil && from.After(*to) {
		problems.Add("start_date", errs.NewValueIsInvalidErrorWithCause("start_date",
			fmt.Errorf("%s is after end_date %s", from.Format(time.RFC3339), to.Format(time.RFC3339))))
	}
	if err := problems.Err(); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Viewer() kernel.Actor {
	return q.viewer
}

// Filter builds the reader filter: staff see every author, others only themselves.
func (q ListOrdersQuery) Filter() PrintingFilter {
	f := PrintingFilter{FormedFrom: q.from, FormedTo: q.to}
	if !q.viewer.IsStaff() {
		author := q.viewer.ID()
		f.AuthorID = &author
	}

	switch {
	case q.status == nil:
		f.Statuses = order.ListableStatuses()
	case q.status.IsListable():
		f.Statuses = []order.Status{*q.status}
	default:
		f.Statuses = []order.Status{}
	}
	return f
}
