package postgres

import (
	"fmt"

	"fablab/internal/adapters/out/postgres/catalogrepo"
	"fablab/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted aggregate,
// including the partial unique index that allows one draft per author.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalogrepo.JobDTO{},
		&orderrepo.PrintingDTO{},
		&orderrepo.LineItemDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
