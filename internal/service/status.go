package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/hospital-billing/internal/models"
)

// StatusStore is the part of the store the status checks need.
type StatusStore interface {
	Ping(ctx context.Context) error
	Info() models.ConnectionInfo
}

// StatusService reports database reachability.
type StatusService struct {
	store StatusStore
}

// NewStatusService creates a new StatusService.
func NewStatusService(store StatusStore) *StatusService {
	return &StatusService{store: store}
}

// Healthy reports whether the database answers a ping.
func (s *StatusService) Healthy(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "error", err)
		return false
	}
	return true
}

// Connection describes the backing database. Connected reflects a live ping.
func (s *StatusService) Connection(ctx context.Context) models.ConnectionInfo {
	info := s.store.Info()
	info.Connected = info.Connected && s.Healthy(ctx)
	return info
}
