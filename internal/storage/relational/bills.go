package relational

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/storage"
)

// CreateBill persists a new bill and fills in its ID and CreatedAt.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	record := newBillRecord(bill)
	err = db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&billRecord{}).Where("bill_number = ?", bill.BillNumber).Count(&taken).Error; err != nil {
			return fmt.Errorf("failed to check bill number: %w", err)
		}
		if taken > 0 {
			return fmt.Errorf("bill number %q: %w", bill.BillNumber, storage.ErrConflict)
		}

		// The unique index still decides when two saves race past the check.
		if err := tx.Create(record).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("bill number %q: %w", bill.BillNumber, storage.ErrConflict)
			}
			return fmt.Errorf("failed to insert bill: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	bill.ID = record.ID
	bill.CreatedAt = record.CreatedAt
	return nil
}

// ListRecentBills retrieves up to limit bills, newest first.
func (s *Store) ListRecentBills(ctx context.Context, limit int) ([]*models.Bill, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var records []billRecord
	err = db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	bills := make([]*models.Bill, len(records))
	for i := range records {
		bills[i] = records[i].toModel()
	}
	return bills, nil
}
