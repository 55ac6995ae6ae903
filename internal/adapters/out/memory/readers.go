package memory

import (
	"context"
	"strings"

	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"
)

// Reader implements queries.CatalogReader and queries.OrderReader over
// committed state only.
type Reader struct {
	store *Store
}

func NewReader(store *Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) ListVisibleItems(_ context.Context, nameContains string) ([]queries.CatalogItemView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(nameContains)
	views := make([]queries.CatalogItemView, 0)
	for _, id := range r.store.jobsOrder {
		item := r.store.jobs[id]
		if !item.IsVisible() {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name()), needle) {
			continue
		}
		views = append(views, itemView(item))
	}
	return views, nil
}

func (r *Reader) GetVisibleItem(_ context.Context, id kernel.UUID) (queries.CatalogItemView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.jobs[id]
	if !ok || !item.IsVisible() {
		return queries.CatalogItemView{}, errs.NewObjectNotFoundError("jobId", id.String())
	}
	return itemView(item), nil
}

func (r *Reader) DraftSummary(_ context.Context, authorID kernel.UUID) (queries.DraftSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	draft := r.store.draftOf(authorID)
	if draft == nil {
		return queries.DraftSummary{}, nil
	}
	id := draft.ID()
	return queries.DraftSummary{DraftID: &id, ItemsCount: draft.ItemCount()}, nil
}

func (r *Reader) ListPrintings(_ context.Context, filter queries.PrintingFilter) ([]queries.PrintingView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	statuses := make(map[order.Status]struct{}, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses[s] = struct{}{}
	}

	views := make([]queries.PrintingView, 0)
	for _, id := range r.store.printingsOrder {
		p := r.store.printings[id]
		if _, ok := statuses[p.Status()]; !ok {
			continue
		}
		if filter.AuthorID != nil && !p.AuthorID().IsEqual(*filter.AuthorID) {
			continue
		}
		if !formedWithin(p, filter) {
			continue
		}
		views = append(views, printingView(p))
	}
	return views, nil
}

func (r *Reader) GetPrinting(_ context.Context, id kernel.UUID) (queries.PrintingView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.printings[id]
	if !ok {
		return queries.PrintingView{}, errs.NewObjectNotFoundError("printingId", id.String())
	}

	view := printingView(p)
	view.LineItems = make([]queries.LineItemView, 0, p.ItemCount())
	for _, line := range p.Items() {
		item, exists := r.store.jobs[line.JobID()]
		if !exists {
			continue
		}
		view.LineItems = append(view.LineItems, queries.LineItemView{
			Job:      itemView(item),
			Quantity: line.Quantity().Value(),
		})
	}
	return view, nil
}

// CountByStatus returns the number of printings in each status that has any.
func (r *Reader) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[order.Status]int)
	for _, p := range r.store.printings {
		counts[p.Status()]++
	}
	return counts, nil
}

func formedWithin(p *order.Printing, filter queries.PrintingFilter) bool {
	if filter.FormedFrom == nil && filter.FormedTo == nil {
		return true
	}
	formedAt := p.FormedAt()
	if formedAt == nil {
		return false
	}
	if filter.FormedFrom != nil && formedAt.Before(*filter.FormedFrom) {
		return false
	}
	if filter.FormedTo != nil && formedAt.After(*filter.FormedTo) {
		return false
	}
	return true
}

func itemView(item *catalog.Item) queries.CatalogItemView {
	view := queries.CatalogItemView{
		ID:          item.ID(),
		Name:        item.Name(),
		Description: item.Description(),
		Price:       item.Price().Amount(),
		Status:      item.Visibility().String(),
	}
	if url := item.ImageURL(); url != "" {
		view.ImageURL = &url
	}
	return view
}

func printingView(p *order.Printing) queries.PrintingView {
	view := queries.PrintingView{
		ID:          p.ID(),
		Author:      p.AuthorID(),
		Moderator:   copyPtr(p.ModeratorID()),
		Status:      p.Status().String(),
		CreatedAt:   p.CreatedAt(),
		FormedAt:    copyPtr(p.FormedAt()),
		CompletedAt: copyPtr(p.CompletedAt()),
		TotalPrice:  copyPtr(p.TotalPrice()),
	}
	if name := p.Name(); name != "" {
		view.Name = &name
	}
	return view
}
