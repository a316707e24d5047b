// Package relational provides a gorm-backed implementation of the storage.Store
// interface. One implementation serves SQLite, PostgreSQL and MySQL; the driver
// is configuration.
package relational

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Config selects and tunes the backing database.
type Config struct {
	// Driver is one of DriverSQLite, DriverPostgres or DriverMySQL.
	Driver string

	// DSN is the connection string for postgres and mysql.
	DSN string

	// SQLitePath is the database file when Driver is sqlite, and the
	// fallback file otherwise.
	SQLitePath string

	// Fallback opens SQLitePath when the primary database cannot be reached.
	Fallback bool

	// Seed inserts the sample catalog into an empty items table.
	Seed bool
}

// Store implements storage.Store using gorm.
type Store struct {
	db     *gorm.DB
	driver string
	info   models.ConnectionInfo
}

// Open connects to the configured database. If the primary is unreachable and
// fallback is enabled, it opens the SQLite file instead. The decision is made
// once, here, and logged.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dsn := cfg.DSN
	if cfg.Driver == DriverSQLite {
		dsn = cfg.SQLitePath
	}

	store, err := New(ctx, cfg.Driver, dsn, cfg.Seed)
	if err == nil {
		return store, nil
	}
	if cfg.Driver == DriverSQLite || !cfg.Fallback {
		return nil, err
	}

	slog.Warn("Primary database unavailable, falling back to SQLite",
		"driver", cfg.Driver,
		"path", cfg.SQLitePath,
		"error", err,
	)
	store, fallbackErr := New(ctx, DriverSQLite, cfg.SQLitePath, cfg.Seed)
	if fallbackErr != nil {
		return nil, fmt.Errorf("failed to open fallback database: %w (primary: %v)", fallbackErr, err)
	}
	store.info.Fallback = true
	return store, nil
}

// New opens a single database, runs migrations and optionally seeds sample data.
func New(ctx context.Context, driver, dsn string, seed bool) (*Store, error) {
	dialector, info, err := dialect(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		// SQLite stores timestamps as text, so they must share one offset to sort.
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger: logger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", info.DatabaseType, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach %s: %w", info.DatabaseType, err)
	}

	// Run migrations
	if err := runMigrations(db.WithContext(ctx)); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if seed {
		if err := seedSampleData(ctx, db); err != nil {
			slog.Error("Failed to seed sample data", "error", err)
		}
	}

	info.Connected = true
	slog.Info("Database connection established", "type", info.DatabaseType, "database", info.Database)
	return &Store{db: db, driver: driver, info: info}, nil
}

// Disconnected returns a store that reports itself as disconnected and fails
// every data operation with storage.ErrNotConnected. It lets the service start
// and report an unhealthy state when no database could be opened.
func Disconnected(driver string) *Store {
	return &Store{driver: driver, info: models.ConnectionInfo{DatabaseType: databaseType(driver)}}
}

// conn returns a session bound to ctx, or ErrNotConnected.
func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, storage.ErrNotConnected
	}
	return s.db.WithContext(ctx), nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrNotConnected
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Info describes the backing database.
func (s *Store) Info() models.ConnectionInfo {
	return s.info
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
