// Package queries contains read operations that return projections of the
// catalog and of printings. Queries never change state; they read through
// CatalogReader and OrderReader, which storage adapters implement.
package queries

import (
	"context"
	"time"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
)

// CatalogItemView is the read projection of a catalog item.
type CatalogItemView struct {
	ID          kernel.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"info"`
	Price       int64       `json:"price"`
	ImageURL    *string     `json:"image"`
	Status      string      `json:"status"`
}

// DraftSummary tells a viewer whether they have a cart and how many
// distinct items it holds.
type DraftSummary struct {
	DraftID    *kernel.UUID
	ItemsCount int
}

// LineItemView is one line of a printing with the referenced catalog item,
// deleted items included.
type LineItemView struct {
	Job      CatalogItemView `json:"job"`
	Quantity int             `json:"quantity"`
}

// PrintingView is the projection used by both listing and detail; listing
// leaves LineItems nil.
type PrintingView struct {
	ID          kernel.UUID    `json:"id"`
	Author      kernel.UUID    `json:"author"`
	Moderator   *kernel.UUID   `json:"moderator"`
	Name        *string        `json:"name"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	FormedAt    *time.Time     `json:"formed_at"`
	CompletedAt *time.Time     `json:"complete_at"`
	TotalPrice  *int64         `json:"total_price"`
	LineItems   []LineItemView `json:"jobs,omitempty"`
}

// PrintingFilter narrows ListPrintings. A nil AuthorID means every author.
// FormedFrom and FormedTo are inclusive bounds on the formation time.
type PrintingFilter struct {
	AuthorID   *kernel.UUID
	Statuses   []order.Status
	FormedFrom *time.Time
	FormedTo   *time.Time
}

// CatalogReader reads catalog projections.
type CatalogReader interface {
	// ListVisibleItems returns visible items in insertion order, optionally
	// filtered by a case-insensitive name substring.
	ListVisibleItems(ctx context.Context, nameContains string) ([]CatalogItemView, error)

	// GetVisibleItem returns ObjectNotFoundError for absent or deleted items.
	GetVisibleItem(ctx context.Context, id kernel.UUID) (CatalogItemView, error)
}

// OrderReader reads printing projections.
type OrderReader interface {
	// DraftSummary returns an empty summary when the author has no draft.
	DraftSummary(ctx context.Context, authorID kernel.UUID) (DraftSummary, error)

	// ListPrintings returns printings matching filter ordered by creation time.
	ListPrintings(ctx context.Context, filter PrintingFilter) ([]PrintingView, error)

	// GetPrinting returns the printing with its line items in insertion order.
	GetPrinting(ctx context.Context, id kernel.UUID) (PrintingView, error)
}
