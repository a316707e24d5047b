package relational

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO), registered as "sqlite"

	"github.com/mmynk/hospital-billing/internal/models"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// sqlitePragmas are appended to every SQLite DSN. Write transactions take the
// lock up front so two writers never deadlock upgrading a read lock.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"

// dialect builds the gorm dialector for driver and describes the target.
func dialect(driver, dsn string) (gorm.Dialector, models.ConnectionInfo, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect(dsn)
	case DriverPostgres:
		return postgresDialect(dsn)
	case DriverMySQL:
		return mysqlDialect(dsn)
	default:
		return nil, models.ConnectionInfo{}, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

func sqliteDialect(path string) (gorm.Dialector, models.ConnectionInfo, error) {
	info := models.ConnectionInfo{DatabaseType: databaseType(DriverSQLite), Database: path}
	if path == "" {
		return nil, info, fmt.Errorf("sqlite path is required")
	}

	if path != ":memory:" {
		// Create parent directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, info, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&" + sqlitePragmas
	} else {
		dsn += "?" + sqlitePragmas
	}

	return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), info, nil
}

func postgresDialect(dsn string) (gorm.Dialector, models.ConnectionInfo, error) {
	info := models.ConnectionInfo{DatabaseType: databaseType(DriverPostgres)}
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, info, fmt.Errorf("invalid postgres DSN: %w", err)
	}
	info.Host = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	info.Database = cfg.Database

	return postgres.Open(dsn), info, nil
}

func mysqlDialect(dsn string) (gorm.Dialector, models.ConnectionInfo, error) {
	info := models.ConnectionInfo{DatabaseType: databaseType(DriverMySQL)}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, info, fmt.Errorf("invalid mysql DSN: %w", err)
	}
	info.Host = cfg.Addr
	info.Database = cfg.DBName

	// created_at/updated_at are scanned into time.Time.
	cfg.ParseTime = true

	return gormmysql.Open(cfg.FormatDSN()), info, nil
}

func databaseType(driver string) string {
	switch driver {
	case DriverSQLite:
		return "SQLite"
	case DriverPostgres:
		return "PostgreSQL"
	case DriverMySQL:
		return "MySQL"
	default:
		return driver
	}
}
