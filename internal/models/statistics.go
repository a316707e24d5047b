package models

// Statistics summarizes the catalog and the ledger.
type Statistics struct {
	ItemsByCategory map[string]int64
	TotalItems      int64
	TotalBills      int64
	TotalRevenue    float64
}

// ConnectionInfo describes the backing database without exposing credentials.
type ConnectionInfo struct {
	Connected bool

	// DatabaseType is "SQLite", "PostgreSQL" or "MySQL".
	DatabaseType string

	// Fallback is true when the configured primary database was unreachable
	// and the store fell back to the local SQLite file.
	Fallback bool

	// Host and Database are parsed from the DSN. For SQLite, Database is the file path.
	Host     string
	Database string
}
