package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/storage"
)

// StatisticsService derives dashboard totals on demand.
type StatisticsService struct {
	store storage.StatsStore
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(store storage.StatsStore) *StatisticsService {
	return &StatisticsService{store: store}
}

// Compute recalculates the totals on every call.
func (s *StatisticsService) Compute(ctx context.Context) (*models.Statistics, error) {
	stats, err := s.store.Statistics(ctx)
	if err != nil {
		slog.Error("Statistics failed", "error", err)
		return nil, err
	}
	return stats, nil
}
