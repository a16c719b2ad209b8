package catalog

import (
	"fmt"

	"gorm.io/gorm"
)

// MigrateCatalog creates the entity and popularity tables. On postgres it
// also maintains the series text index and a GIN index over series tags.
func MigrateCatalog(db *gorm.DB) error {
	if err := db.AutoMigrate(&Movie{}, &Series{}, &PopularMovie{}, &PopularSeries{}); err != nil {
		return err
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_series_text ON series USING GIN (to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(description, '')))`,
		`CREATE INDEX IF NOT EXISTS idx_series_tags ON series USING GIN (tags)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("series index: %w", err)
		}
	}
	return nil
}
