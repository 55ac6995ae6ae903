package memory

import (
	"context"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/errs"
)

type catalogRepository struct {
	uow *UnitOfWork
}

func (r *catalogRepository) Add(_ context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, exists, err := r.uow.lookupItem(item.ID()); err != nil || exists {
		if err != nil {
			return err
		}
		return errs.NewValueIsInvalidError("jobId")
	}

	snapshot, err := cloneItem(item)
	if err != nil {
		return err
	}
	r.uow.jobs[item.ID()] = snapshot
	r.uow.newJobs = append(r.uow.newJobs, item.ID())
	return r.uow.autocommit()
}

func (r *catalogRepository) Update(_ context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	_, exists, err := r.uow.lookupItem(item.ID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("jobId", item.ID().String())
	}

	snapshot, err := cloneItem(item)
	if err != nil {
		return err
	}
	r.uow.jobs[item.ID()] = snapshot
	return r.uow.autocommit()
}

func (r *catalogRepository) Get(_ context.Context, id kernel.UUID) (*catalog.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	item, exists, err := r.uow.lookupItem(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("jobId", id.String())
	}
	return item, nil
}

// GetMany returns items in insertion order, committed ones first.
func (r *catalogRepository) GetMany(_ context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	wanted := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	r.uow.store.mu.RLock()
	order := append([]kernel.UUID(nil), r.uow.store.jobsOrder...)
	r.uow.store.mu.RUnlock()
	order = append(order, r.uow.newJobs...)

	items := make([]*catalog.Item, 0, len(ids))
	for _, id := range order {
		if _, ok := wanted[id]; !ok {
			continue
		}
		item, exists, err := r.uow.lookupItem(id)
		if err != nil {
			return nil, err
		}
		if exists {
			items = append(items, item)
		}
	}
	return items, nil
}
