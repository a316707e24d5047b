package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/service"
)

// MockCatalog is a mock implementation of Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListAll(ctx context.Context) ([]*models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockCatalog) ListByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockCatalog) Add(ctx context.Context, in service.ItemInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalog) Update(ctx context.Context, id int64, in service.ItemInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockCatalog) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLedger is a mock implementation of Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Save(ctx context.Context, in service.BillInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) ListRecent(ctx context.Context, limit int) ([]*models.Bill, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bill), args.Error(1)
}

// MockStatistics is a mock implementation of Statistics
type MockStatistics struct {
	mock.Mock
}

func (m *MockStatistics) Compute(ctx context.Context) (*models.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statistics), args.Error(1)
}

// MockStatus is a mock implementation of Status
type MockStatus struct {
	mock.Mock
}

func (m *MockStatus) Healthy(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockStatus) Connection(ctx context.Context) models.ConnectionInfo {
	args := m.Called(ctx)
	return args.Get(0).(models.ConnectionInfo)
}

// MockLogin is a mock implementation of Login
type MockLogin struct {
	mock.Mock
}

func (m *MockLogin) Login(ctx context.Context, password string) (*service.Session, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}
