package readmodel

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const printingColumns = `p.id, p.author_id, p.moderator_id, p.name, p.status,
	p.created_at, p.formed_at, p.completed_at, p.total_price`

// OrderReader implements queries.OrderReader and the status counts used by
// the stats job.
type OrderReader struct {
	db *gorm.DB
}

func NewOrderReader(db *gorm.DB) *OrderReader {
	return &OrderReader{db: db}
}

func (r *OrderReader) DraftSummary(ctx context.Context, authorID kernel.UUID) (queries.DraftSummary, error) {
	var (
		id    uuid.UUID
		count int
	)

	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, COUNT(l.job_id)
		FROM printings p
		LEFT JOIN printing_jobs l ON l.printing_id = p.id
		WHERE p.author_id = ? AND p.status = ?
		GROUP BY p.id
	`, authorID.Bytes(), int(order.Draft)).Row().Scan(&id, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return queries.DraftSummary{}, nil
	}
	if err != nil {
		return queries.DraftSummary{}, err
	}

	draftID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return queries.DraftSummary{}, err
	}
	return queries.DraftSummary{DraftID: &draftID, ItemsCount: count}, nil
}

func (r *OrderReader) ListPrintings(ctx context.Context, filter queries.PrintingFilter) ([]queries.PrintingView, error) {
	views := make([]queries.PrintingView, 0)
	if len(filter.Statuses) == 0 {
		return views, nil
	}

	statuses := make([]int, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, int(s))
	}

	where := []string{"p.status IN ?"}
	args := []any{statuses}
	if filter.AuthorID != nil {
		where = append(where, "p.author_id = ?")
		args = append(args, filter.AuthorID.Bytes())
	}
	if filter.FormedFrom != nil {
		where = append(where, "p.formed_at >= ?")
		args = append(args, *filter.FormedFrom)
	}
	if filter.FormedTo != nil {
		where = append(where, "p.formed_at <= ?")
		args = append(args, *filter.FormedTo)
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT `+printingColumns+`
		FROM printings p
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY p.created_at, p.id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanPrinting(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func (r *OrderReader) GetPrinting(ctx context.Context, id kernel.UUID) (queries.PrintingView, error) {
	db := r.db.WithContext(ctx)

	view, err := scanPrinting(db.Raw(`
		SELECT `+printingColumns+`
		FROM printings p
		WHERE p.id = ?
	`, id.Bytes()).Row())
	if errors.Is(err, sql.ErrNoRows) {
		return queries.PrintingView{}, errs.NewObjectNotFoundError("printingId", id.String())
	}
	if err != nil {
		return queries.PrintingView{}, err
	}

	rows, err := db.Raw(`
		SELECT `+jobColumns+`, l.quantity
		FROM printing_jobs l
		JOIN jobs j ON j.id = l.job_id
		WHERE l.printing_id = ?
		ORDER BY l.position
	`, id.Bytes()).Rows()
	if err != nil {
		return queries.PrintingView{}, err
	}
	defer rows.Close()

	view.LineItems = make([]queries.LineItemView, 0)
	for rows.Next() {
		var quantity int
		job, scanErr := scanJob(rows, &quantity)
		if scanErr != nil {
			return queries.PrintingView{}, scanErr
		}
		view.LineItems = append(view.LineItems, queries.LineItemView{Job: job, Quantity: quantity})
	}

	if err = rows.Err(); err != nil {
		return queries.PrintingView{}, err
	}

	return view, nil
}

// CountByStatus returns the number of printings in each status that has any.
func (r *OrderReader) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	counts := make(map[order.Status]int)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM printings
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[order.Status(status)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func scanPrinting(s scanner) (queries.PrintingView, error) {
	var (
		id          uuid.UUID
		authorID    uuid.UUID
		moderatorID *uuid.UUID
		name        string
		status      int
		createdAt   time.Time
		formedAt    *time.Time
		completedAt *time.Time
		totalPrice  *int64
	)

	err := s.Scan(&id, &authorID, &moderatorID, &name, &status, &createdAt, &formedAt, &completedAt, &totalPrice)
	if err != nil {
		return queries.PrintingView{}, err
	}

	printingID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return queries.PrintingView{}, err
	}
	author, err := kernel.UUIDFromBytes(authorID[:])
	if err != nil {
		return queries.PrintingView{}, err
	}

	view := queries.PrintingView{
		ID:          printingID,
		Author:      author,
		Status:      order.Status(status).String(),
		CreatedAt:   createdAt,
		FormedAt:    formedAt,
		CompletedAt: completedAt,
		TotalPrice:  totalPrice,
	}
	if moderatorID != nil {
		moderator, modErr := kernel.UUIDFromBytes((*moderatorID)[:])
		if modErr != nil {
			return queries.PrintingView{}, modErr
		}
		view.Moderator = &moderator
	}
	if name != "" {
		view.Name = &name
	}
	return view, nil
}
