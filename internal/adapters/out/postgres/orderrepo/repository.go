package orderrepo

import (
	"context"
	"errors"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new printing with its line items. A second draft for the same
// author violates idx_printings_single_draft and is reported as a conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Printing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConcurrencyConflictErrorWithCause("authorId", aggregate.AuthorID().String(), err)
		}
		return err
	}

	return r.replaceItems(ctx, aggregate)
}

// Update writes the printing if its stored version still matches, then
// replaces its line items. The aggregate's version is advanced on success.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Printing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&PrintingDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select(updatableColumns).
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConcurrencyConflictErrorWithCause("printingId", aggregate.ID().String(), result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if err := r.replaceItems(ctx, aggregate); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

// Get retrieves a printing by id in any status.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Printing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrintingDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("printingId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDraftByAuthor locks the author's draft row for the rest of the transaction.
func (r *GormOrderRepository) GetDraftByAuthor(ctx context.Context, authorID kernel.UUID) (*order.Printing, error) {
	if err := authorID.Validate(); err != nil {
		return nil, err
	}

	var dto PrintingDTO
	err := r.withItems(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: PrintingDTO{}.TableName()}}).
		First(&dto, "author_id = ? AND status = ?", authorID.Bytes(), int(order.Draft)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draft", authorID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// replaceItems rewrites the line item rows of the printing.
func (r *GormOrderRepository) replaceItems(ctx context.Context, aggregate *order.Printing) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("printing_id = ?", aggregate.ID().Bytes()).Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}

	rows := lineItemsFromDomain(aggregate)
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// missingOrStale tells a deleted row from a version mismatch after an update
// touched nothing.
func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PrintingDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("printingId", id.String())
	}
	return errs.NewConcurrencyConflictError("printingId", id.String())
}
