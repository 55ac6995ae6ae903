package ports

import (
	"context"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for printing aggregates,
// line items included.
//
// Concurrency contract:
//   - Add of a second Draft for the same author fails with ConcurrencyConflictError
//   - Update compares the stored version with aggregate.Version(); a mismatch
//     fails with ConcurrencyConflictError. On success the aggregate's version
//     is advanced
type OrderRepository interface {
	// Add persists a new printing.
	Add(ctx context.Context, aggregate *order.Printing) error

	// Update persists status, timestamps, totals and the full set of line items.
	Update(ctx context.Context, aggregate *order.Printing) error

	// Get retrieves a printing by id in any status.
	Get(ctx context.Context, id kernel.UUID) (*order.Printing, error)

	// GetDraftByAuthor retrieves the author's single draft, locking it for the
	// rest of the transaction where the storage supports it.
	// Returns ObjectNotFoundError when the author has no draft.
	GetDraftByAuthor(ctx context.Context, authorID kernel.UUID) (*order.Printing, error)
}
