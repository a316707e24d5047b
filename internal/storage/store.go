// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/hospital-billing/internal/models"
)

var (
	// ErrNotFound is returned when an operation targets an id that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("record already exists")

	// ErrNotConnected is returned by every data operation of a store whose
	// database could not be reached at startup.
	ErrNotConnected = errors.New("database not connected")
)

// ItemStore persists the item catalog.
type ItemStore interface {
	// ListItems returns all items ordered by category, then name.
	ListItems(ctx context.Context) ([]*models.Item, error)

	// ListItemsByCategory returns items whose category matches exactly, ordered by name.
	// No match is an empty slice, not an error.
	ListItemsByCategory(ctx context.Context, category string) ([]*models.Item, error)

	// CreateItem inserts item and populates its ID and timestamps.
	CreateItem(ctx context.Context, item *models.Item) error

	// UpdateItem applies patch to the item with the given id and refreshes UpdatedAt.
	// Returns ErrNotFound if the id does not exist.
	UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) error

	// DeleteItem removes the item. Returns ErrNotFound if the id does not exist.
	DeleteItem(ctx context.Context, id int64) error
}

// BillStore persists saved bills.
type BillStore interface {
	// CreateBill inserts bill and populates its ID and CreatedAt.
	// Returns ErrConflict if the bill number is already taken.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ListRecentBills returns at most limit bills, newest first.
	ListRecentBills(ctx context.Context, limit int) ([]*models.Bill, error)
}

// StatsStore derives aggregate figures over both tables.
type StatsStore interface {
	Statistics(ctx context.Context) (*models.Statistics, error)
}

// Store is the full data-access contract. A single relational implementation
// serves SQLite, PostgreSQL and MySQL.
type Store interface {
	ItemStore
	BillStore
	StatsStore

	// Ping checks connectivity. A disconnected store returns ErrNotConnected.
	Ping(ctx context.Context) error

	// Info describes the backing database.
	Info() models.ConnectionInfo

	// Close releases any resources held by the store.
	Close() error
}
