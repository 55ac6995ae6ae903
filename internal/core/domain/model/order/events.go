package order

import (
	"time"

	"fablab/internal/core/domain/model/kernel"
)

// ChangedEvent describes a committed status change of a printing.
type ChangedEvent struct {
	PrintingID kernel.UUID
	AuthorID   kernel.UUID
	Status     Status
	TotalPrice *int64
	OccurredAt time.Time
}

// NewChangedEvent snapshots p as it is now.
func NewChangedEvent(p *Printing, at time.Time) ChangedEvent {
	return ChangedEvent{
		PrintingID: p.ID(),
		AuthorID:   p.AuthorID(),
		Status:     p.Status(),
		TotalPrice: p.TotalPrice(),
		OccurredAt: at,
	}
}
