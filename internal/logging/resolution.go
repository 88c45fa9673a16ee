package logging

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS resolution_log (
	id          TEXT PRIMARY KEY,
	catalog_id  TEXT,
	hairstyle   TEXT NOT NULL,
	tag         TEXT NOT NULL,
	percentage  INTEGER NOT NULL,
	range_name  TEXT,
	chosen      TEXT NOT NULL,
	path        TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resolution_hairstyle ON resolution_log(hairstyle);
`

// EnsureSchema creates the resolution_log table if needed.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("resolution log schema: %w", err)
	}
	return nil
}

// #endregion schema

// #region log-resolution
// LogResolution writes a resolution entry to the resolution_log table.
func LogResolution(db *sql.DB, entry ResolutionEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO resolution_log (id, catalog_id, hairstyle, tag, percentage, range_name, chosen, path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullIfEmpty(entry.CatalogID),
		entry.Hairstyle,
		entry.Tag,
		entry.Percentage,
		nullIfEmpty(entry.RangeName),
		entry.Chosen,
		entry.Path,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log resolution: %w", err)
	}
	return nil
}

// #endregion log-resolution

// #region list-recent
// ListRecent returns up to limit entries, newest first.
func ListRecent(db *sql.DB, limit int) ([]ResolutionEntry, error) {
	rows, err := db.Query(
		`SELECT id, catalog_id, hairstyle, tag, percentage, range_name, chosen, path, created_at
		 FROM resolution_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var out []ResolutionEntry
	for rows.Next() {
		var e ResolutionEntry
		var catalogID, rangeName sql.NullString
		var createdStr string
		if err := rows.Scan(&e.ID, &catalogID, &e.Hairstyle, &e.Tag, &e.Percentage, &rangeName, &e.Chosen, &e.Path, &createdStr); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		e.CatalogID = catalogID.String
		e.RangeName = rangeName.String
		created, err := time.Parse(time.RFC3339Nano, createdStr)
		if err != nil {
			log.Printf("resolution %s: bad created_at %q: %v", e.ID, createdStr, err)
		}
		e.CreatedAt = created
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion list-recent

// #region audit-log
// AuditLog owns a SQLite connection dedicated to the resolution log.
type AuditLog struct {
	db *sql.DB
}

// Open opens (or creates) the audit database at dbPath.
func Open(dbPath string) (*AuditLog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &AuditLog{db: db}, nil
}

// DB returns the underlying *sql.DB.
func (a *AuditLog) DB() *sql.DB {
	return a.db
}

// Log records one entry.
func (a *AuditLog) Log(entry ResolutionEntry) error {
	return LogResolution(a.db, entry)
}

// Recent returns up to limit entries, newest first.
func (a *AuditLog) Recent(limit int) ([]ResolutionEntry, error) {
	return ListRecent(a.db, limit)
}

// Close closes the database.
func (a *AuditLog) Close() error {
	return a.db.Close()
}

// #endregion audit-log

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
