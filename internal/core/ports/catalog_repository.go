// Package ports defines the contracts between the fablab core and its
// adapters: repositories, the unit of work, the asset store, the event
// publisher and the metrics sink.
package ports

import (
	"context"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
)

// CatalogRepository defines the persistence contract for catalog items.
// Items are never removed from storage; soft deletion is an Update.
type CatalogRepository interface {
	// Add persists a new catalog item.
	Add(ctx context.Context, item *catalog.Item) error

	// Update persists changes to an existing item.
	// Returns ObjectNotFoundError if the item does not exist.
	Update(ctx context.Context, item *catalog.Item) error

	// Get retrieves an item by id regardless of visibility.
	// Callers decide whether a deleted item counts as absent.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Item, error)

	// GetMany retrieves the items with the given ids, deleted ones included.
	// Missing ids are silently skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error)
}
