package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite audit journal
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := configureSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// configureSQLite applies pragmas suited to a small append-mostly journal
func configureSQLite(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// AuditRepository returns the repository for audit journal entries
func (d *DB) AuditRepository() AuditRepository {
	return NewAuditRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	auditSchema := `CREATE TABLE IF NOT EXISTS audit_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		flight_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_audit_entries_session ON audit_entries(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_entries_created_at ON audit_entries(created_at)`,
	}

	if _, err := d.db.Exec(auditSchema); err != nil {
		return fmt.Errorf("failed to create audit_entries table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
