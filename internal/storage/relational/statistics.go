package relational

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/mmynk/hospital-billing/internal/models"
)

type categoryCount struct {
	Category string
	Count    int64
}

// snapshotOptions returns the transaction options under which every query of
// one Statistics call reads the same data. A SQLite transaction already reads
// a single snapshot; the servers need repeatable read for that.
func snapshotOptions(driver string) *sql.TxOptions {
	if driver == DriverSQLite {
		return nil
	}
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
}

// Statistics computes catalog and ledger totals. Nothing is cached.
func (s *Store) Statistics(ctx context.Context) (*models.Statistics, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var stats *models.Statistics
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = aggregate(tx)
		return err
	}, snapshotOptions(s.driver))
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func aggregate(tx *gorm.DB) (*models.Statistics, error) {
	var counts []categoryCount
	err := tx.Model(&itemRecord{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count items by category: %w", err)
	}

	stats := &models.Statistics{ItemsByCategory: make(map[string]int64, len(counts))}
	for _, c := range counts {
		stats.ItemsByCategory[c.Category] = c.Count
	}

	if err := tx.Model(&itemRecord{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}
	if err := tx.Model(&billRecord{}).Count(&stats.TotalBills).Error; err != nil {
		return nil, fmt.Errorf("failed to count bills: %w", err)
	}

	row := tx.Model(&billRecord{}).Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}
