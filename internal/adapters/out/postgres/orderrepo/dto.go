// Package orderrepo persists printing aggregates and their line items with GORM.
package orderrepo

import (
	"time"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// PrintingDTO is the row shape of a printing.
//
// The partial unique index on author_id covers only drafts (status 1 is
// order.Draft) and is what keeps one draft per author across replicas.
type PrintingDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_printings_single_draft,where:status = 1"`
	ModeratorID *uuid.UUID `gorm:"type:uuid"`
	Name        string     `gorm:"size:100;not null;default:''"`
	Status      int        `gorm:"type:smallint;not null;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	FormedAt    *time.Time `gorm:"index"`
	CompletedAt *time.Time
	TotalPrice  *int64
	Version     int `gorm:"not null;default:0"`

	Items []LineItemDTO `gorm:"foreignKey:PrintingID;constraint:OnDelete:CASCADE"`
}

func (PrintingDTO) TableName() string {
	return "printings"
}

// LineItemDTO is one line of a printing. The composite key allows a catalog
// item at most once per printing; Position keeps insertion order.
type LineItemDTO struct {
	PrintingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID      uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "printing_jobs"
}

// updatableColumns are written by Update; ID, author and creation time never change.
var updatableColumns = []string{
	"moderator_id", "name", "status", "formed_at", "completed_at", "total_price", "version",
}

func fromDomain(p *order.Printing) PrintingDTO {
	var moderatorID *uuid.UUID
	if id := p.ModeratorID(); id != nil {
		raw := id.Bytes()
		moderatorID = &raw
	}

	return PrintingDTO{
		ID:          p.ID().Bytes(),
		AuthorID:    p.AuthorID().Bytes(),
		ModeratorID: moderatorID,
		Name:        p.Name(),
		Status:      int(p.Status()),
		CreatedAt:   p.CreatedAt(),
		FormedAt:    p.FormedAt(),
		CompletedAt: p.CompletedAt(),
		TotalPrice:  p.TotalPrice(),
		Version:     p.Version(),
	}
}

func lineItemsFromDomain(p *order.Printing) []LineItemDTO {
	items := p.Items()
	dtos := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, LineItemDTO{
			PrintingID: p.ID().Bytes(),
			JobID:      item.JobID().Bytes(),
			Position:   i,
			Quantity:   item.Quantity().Value(),
		})
	}
	return dtos
}

// toDomain expects dto.Items sorted by Position.
func toDomain(dto PrintingDTO) (*order.Printing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	authorID, err := kernel.UUIDFromBytes(dto.AuthorID[:])
	if err != nil {
		return nil, err
	}

	var moderatorID *kernel.UUID
	if dto.ModeratorID != nil {
		mID, moderatorErr := kernel.UUIDFromBytes((*dto.ModeratorID)[:])
		if moderatorErr != nil {
			return nil, moderatorErr
		}
		moderatorID = &mID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, row := range dto.Items {
		jobID, jobErr := kernel.UUIDFromBytes(row.JobID[:])
		if jobErr != nil {
			return nil, jobErr
		}
		quantity, qErr := kernel.NewQuantity(row.Quantity)
		if qErr != nil {
			return nil, qErr
		}
		item, itemErr := order.NewLineItem(jobID, quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestorePrinting(order.State{
		ID:          id,
		AuthorID:    authorID,
		ModeratorID: moderatorID,
		Name:        dto.Name,
		Status:      order.Status(dto.Status),
		CreatedAt:   dto.CreatedAt,
		FormedAt:    dto.FormedAt,
		CompletedAt: dto.CompletedAt,
		TotalPrice:  dto.TotalPrice,
		Items:       items,
		Version:     dto.Version,
	})
}
