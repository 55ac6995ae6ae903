package memory

import (
	"context"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

// Add stages a new printing. A second draft for the author is rejected here
// when visible already, and again at commit.
func (r *orderRepository) Add(ctx context.Context, aggregate *order.Printing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists, err := r.uow.lookupPrinting(aggregate.ID()); err != nil || exists {
		if err != nil {
			return err
		}
		return errs.NewConcurrencyConflictError("printingId", aggregate.ID().String())
	}
	if aggregate.Status() == order.Draft {
		if _, err := r.GetDraftByAuthor(ctx, aggregate.AuthorID()); err == nil {
			return errs.NewConcurrencyConflictError("authorId", aggregate.AuthorID().String())
		}
	}

	snapshot, err := clonePrinting(aggregate)
	if err != nil {
		return err
	}
	r.uow.printings[aggregate.ID()] = &stagedPrinting{
		printing:    snapshot,
		isNew:       true,
		baseVersion: aggregate.Version(),
	}
	r.uow.newOrder = append(r.uow.newOrder, aggregate.ID())
	return r.uow.autocommit()
}

// Update stages the printing if its version matches what this unit of work
// sees, then advances the aggregate's version.
func (r *orderRepository) Update(_ context.Context, aggregate *order.Printing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	current, exists, err := r.uow.lookupPrinting(aggregate.ID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("printingId", aggregate.ID().String())
	}
	if current.Version() != aggregate.Version() {
		return errs.NewConcurrencyConflictError("printingId", aggregate.ID().String())
	}

	snapshot, err := clonePrinting(aggregate)
	if err != nil {
		return err
	}
	snapshot.AdvanceVersion()

	staged, ok := r.uow.printings[aggregate.ID()]
	if !ok {
		staged = &stagedPrinting{baseVersion: aggregate.Version()}
		r.uow.printings[aggregate.ID()] = staged
	}
	staged.printing = snapshot

	if err = r.uow.autocommit(); err != nil {
		return err
	}
	aggregate.AdvanceVersion()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Printing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	p, exists, err := r.uow.lookupPrinting(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("printingId", id.String())
	}
	return p, nil
}

func (r *orderRepository) GetDraftByAuthor(_ context.Context, authorID kernel.UUID) (*order.Printing, error) {
	if err := authorID.Validate(); err != nil {
		return nil, err
	}

	for _, id := range r.uow.newOrder {
		if p := r.uow.printings[id].printing; p.Status() == order.Draft && p.AuthorID().IsEqual(authorID) {
			return clonePrinting(p)
		}
	}

	r.uow.store.mu.RLock()
	committed := r.uow.store.draftOf(authorID)
	r.uow.store.mu.RUnlock()
	if committed != nil {
		p, _, err := r.uow.lookupPrinting(committed.ID())
		if err != nil {
			return nil, err
		}
		if p.Status() == order.Draft {
			return p, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("draft", authorID.String())
}
