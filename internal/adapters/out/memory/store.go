// Package memory is an in-process storage adapter used for local runs and
// scenario tests. It implements the same unit of work, repository and reader
// contracts as the postgres adapter.
//
// Transactions are optimistic: writes are staged on the unit of work and
// validated against the committed state under the store lock at Commit.
// A commit fails with ConcurrencyConflictError when a printing it updates was
// committed by someone else in the meantime, or when it would leave an author
// with a second draft.
package memory

import (
	"sync"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
)

// Store holds the committed state. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	jobs      map[kernel.UUID]*catalog.Item
	jobsOrder []kernel.UUID

	printings      map[kernel.UUID]*order.Printing
	printingsOrder []kernel.UUID
}

func NewStore() *Store {
	return &Store{
		jobs:      make(map[kernel.UUID]*catalog.Item),
		printings: make(map[kernel.UUID]*order.Printing),
	}
}

// draftOf returns the committed draft of author, if any. Caller holds mu.
func (s *Store) draftOf(author kernel.UUID) *order.Printing {
	for _, id := range s.printingsOrder {
		p := s.printings[id]
		if p.Status() == order.Draft && p.AuthorID().IsEqual(author) {
			return p
		}
	}
	return nil
}

func cloneItem(item *catalog.Item) (*catalog.Item, error) {
	return catalog.RestoreItem(
		item.ID(),
		item.Name(),
		item.Description(),
		item.Price().Amount(),
		item.ImageURL(),
		item.Visibility(),
	)
}

func clonePrinting(p *order.Printing) (*order.Printing, error) {
	return order.RestorePrinting(order.State{
		ID:          p.ID(),
		AuthorID:    p.AuthorID(),
		ModeratorID: copyPtr(p.ModeratorID()),
		Name:        p.Name(),
		Status:      p.Status(),
		CreatedAt:   p.CreatedAt(),
		FormedAt:    copyPtr(p.FormedAt()),
		CompletedAt: copyPtr(p.CompletedAt()),
		TotalPrice:  copyPtr(p.TotalPrice()),
		Items:       p.Items(),
		Version:     p.Version(),
	})
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
