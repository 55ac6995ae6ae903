// Package readmodel answers read-side queries with plain SQL over the tables
// written by catalogrepo and orderrepo. Nothing here goes through the
// aggregates or takes locks.
package readmodel

import (
	"context"
	"database/sql"
	"errors"

	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const jobColumns = `j.id, j.name, j.description, j.price, j.image_url, j.visibility`

// CatalogReader implements queries.CatalogReader.
type CatalogReader struct {
	db *gorm.DB
}

func NewCatalogReader(db *gorm.DB) *CatalogReader {
	return &CatalogReader{db: db}
}

func (r *CatalogReader) ListVisibleItems(ctx context.Context, nameContains string) ([]queries.CatalogItemView, error) {
	views := make([]queries.CatalogItemView, 0)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT `+jobColumns+`
		FROM jobs j
		WHERE j.visibility = ?
		  AND (? = '' OR strpos(lower(j.name), lower(?)) > 0)
		ORDER BY j.seq
	`, int(catalog.Visible), nameContains, nameContains).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanJob(rows)
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

func (r *CatalogReader) GetVisibleItem(ctx context.Context, id kernel.UUID) (queries.CatalogItemView, error) {
	row := r.db.WithContext(ctx).Raw(`
		SELECT `+jobColumns+`
		FROM jobs j
		WHERE j.id = ? AND j.visibility = ?
	`, id.Bytes(), int(catalog.Visible)).Row()

	view, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return queries.CatalogItemView{}, errs.NewObjectNotFoundError("jobId", id.String())
	}
	return view, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner, extra ...any) (queries.CatalogItemView, error) {
	var (
		id          uuid.UUID
		name        string
		description string
		price       int64
		imageURL    string
		visibility  int
	)

	dest := append([]any{&id, &name, &description, &price, &imageURL, &visibility}, extra...)
	if err := s.Scan(dest...); err != nil {
		return queries.CatalogItemView{}, err
	}

	jobID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return queries.CatalogItemView{}, err
	}

	view := queries.CatalogItemView{
		ID:          jobID,
		Name:        name,
		Description: description,
		Price:       price,
		Status:      catalog.Visibility(visibility).String(),
	}
	if imageURL != "" {
		view.ImageURL = &imageURL
	}
	return view, nil
}
