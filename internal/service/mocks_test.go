package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mmynk/hospital-billing/internal/models"
)

// MockStore is a mock implementation of the item, bill and statistics stores.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListItems(ctx context.Context) ([]*models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockStore) ListItemsByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockStore) CreateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStore) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStore) DeleteItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockStore) ListRecentBills(ctx context.Context, limit int) ([]*models.Bill, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bill), args.Error(1)
}

func (m *MockStore) Statistics(ctx context.Context) (*models.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statistics), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Info() models.ConnectionInfo {
	args := m.Called()
	return args.Get(0).(models.ConnectionInfo)
}
