package relational

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// schemaVersion is recorded in the settings table after every migration.
const schemaVersion = "1"

// runMigrations creates or updates the items, bills and settings tables.
// It is idempotent and runs on every startup.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&itemRecord{}, &billRecord{}, &settingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	version := settingRecord{Key: "schema_version", Value: schemaVersion}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&version).Error
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return nil
}
