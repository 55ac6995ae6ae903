package memory

import (
	"context"
	"errors"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"
	"fablab/internal/pkg/errs"
)

// ErrTransactionNotActive is returned by Commit without a preceding Begin.
var ErrTransactionNotActive = errors.New("transaction is not active")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	uow := &UnitOfWork{store: f.store}
	uow.reset()
	return uow
}

type stagedPrinting struct {
	printing    *order.Printing
	isNew       bool
	baseVersion int
}

// UnitOfWork stages writes until Commit. Without Begin every repository
// write commits on its own.
type UnitOfWork struct {
	store  *Store
	active bool

	jobs      map[kernel.UUID]*catalog.Item
	newJobs   []kernel.UUID
	printings map[kernel.UUID]*stagedPrinting
	newOrder  []kernel.UUID
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrTransactionNotActive
	}
	defer uow.reset()

	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()

	if err := uow.validate(); err != nil {
		return err
	}
	uow.apply()
	return nil
}

// Rollback drops staged writes. It is a no-op when nothing is active.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.reset()
	return nil
}

func (uow *UnitOfWork) CatalogRepository() ports.CatalogRepository {
	return &catalogRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.jobs = make(map[kernel.UUID]*catalog.Item)
	uow.newJobs = nil
	uow.printings = make(map[kernel.UUID]*stagedPrinting)
	uow.newOrder = nil
}

// autocommit commits a single write made outside a transaction.
func (uow *UnitOfWork) autocommit() error {
	if uow.active {
		return nil
	}
	uow.active = true
	return uow.Commit(context.Background())
}

// validate checks staged printings against committed state. Caller holds
// the store write lock.
func (uow *UnitOfWork) validate() error {
	for id, staged := range uow.printings {
		current, exists := uow.store.printings[id]
		switch {
		case staged.isNew && exists:
			return errs.NewConcurrencyConflictError("printingId", id.String())
		case !staged.isNew && !exists:
			return errs.NewObjectNotFoundError("printingId", id.String())
		case !staged.isNew && current.Version() != staged.baseVersion:
			return errs.NewConcurrencyConflictError("printingId", id.String())
		}
	}

	for id, staged := range uow.printings {
		p := staged.printing
		if p.Status() != order.Draft {
			continue
		}
		other := uow.store.draftOf(p.AuthorID())
		if other == nil || other.ID().IsEqual(id) {
			continue
		}
		if replaced, ok := uow.printings[other.ID()]; ok && replaced.printing.Status() != order.Draft {
			continue
		}
		return errs.NewConcurrencyConflictError("authorId", p.AuthorID().String())
	}
	return nil
}

// apply publishes staged writes. Caller holds the store write lock.
func (uow *UnitOfWork) apply() {
	for id, item := range uow.jobs {
		uow.store.jobs[id] = item
	}
	uow.store.jobsOrder = append(uow.store.jobsOrder, uow.newJobs...)

	for id, staged := range uow.printings {
		uow.store.printings[id] = staged.printing
	}
	uow.store.printingsOrder = append(uow.store.printingsOrder, uow.newOrder...)
}

// lookupPrinting returns the printing as this unit of work sees it: staged
// first, committed otherwise. The result is a private copy.
func (uow *UnitOfWork) lookupPrinting(id kernel.UUID) (*order.Printing, bool, error) {
	if staged, ok := uow.printings[id]; ok {
		p, err := clonePrinting(staged.printing)
		return p, true, err
	}

	uow.store.mu.RLock()
	committed, ok := uow.store.printings[id]
	uow.store.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	p, err := clonePrinting(committed)
	return p, true, err
}

func (uow *UnitOfWork) lookupItem(id kernel.UUID) (*catalog.Item, bool, error) {
	if staged, ok := uow.jobs[id]; ok {
		item, err := cloneItem(staged)
		return item, true, err
	}

	uow.store.mu.RLock()
	committed, ok := uow.store.jobs[id]
	uow.store.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	item, err := cloneItem(committed)
	return item, true, err
}
