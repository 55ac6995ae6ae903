// Package catalogrepo persists catalog items with GORM. Items are never
// removed from the table; soft deletion only changes the visibility column.
package catalogrepo

import (
	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row shape of a catalog item. Seq records insertion order,
// which is the listing order.
type JobDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Price       int64     `gorm:"not null"`
	ImageURL    string    `gorm:"size:512;not null;default:''"`
	Visibility  int       `gorm:"type:smallint;not null;index"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

// updatableColumns are written by Update; Seq and ID never change.
var updatableColumns = []string{"name", "description", "price", "image_url", "visibility"}

func fromDomain(item *catalog.Item) JobDTO {
	return JobDTO{
		ID:          item.ID().Bytes(),
		Name:        item.Name(),
		Description: item.Description(),
		Price:       item.Price().Amount(),
		ImageURL:    item.ImageURL(),
		Visibility:  int(item.Visibility()),
	}
}

func toDomain(dto JobDTO) (*catalog.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return catalog.RestoreItem(
		id,
		dto.Name,
		dto.Description,
		dto.Price,
		dto.ImageURL,
		catalog.Visibility(dto.Visibility),
	)
}
