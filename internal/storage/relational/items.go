package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/storage"
)

// ListItems retrieves all items ordered by category, then name.
func (s *Store) ListItems(ctx context.Context) ([]*models.Item, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var records []itemRecord
	if err := db.Order("category").Order("name").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return toItems(records), nil
}

// ListItemsByCategory retrieves the items of one category ordered by name.
func (s *Store) ListItemsByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var records []itemRecord
	if err := db.Where("category = ?", category).Order("name").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", err)
	}
	return toItems(records), nil
}

// CreateItem persists a new item and fills in its ID and timestamps.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	record := newItemRecord(item)
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	item.ID = record.ID
	item.CreatedAt = record.CreatedAt
	item.UpdatedAt = record.UpdatedAt
	return nil
}

// UpdateItem applies a partial update to an existing item.
func (s *Store) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var record itemRecord
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
			}
			return fmt.Errorf("failed to get item: %w", err)
		}

		record.applyPatch(patch)
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		return nil
	})
}

// DeleteItem removes an item by ID.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&itemRecord{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete item: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}

func toItems(records []itemRecord) []*models.Item {
	items := make([]*models.Item, len(records))
	for i := range records {
		items[i] = records[i].toModel()
	}
	return items
}
