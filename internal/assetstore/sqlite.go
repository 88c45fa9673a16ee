package assetstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS assets (
	path        TEXT PRIMARY KEY,
	format      TEXT NOT NULL,
	width       INTEGER NOT NULL,
	height      INTEGER NOT NULL,
	data        BLOB NOT NULL,
	imported_at TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// SQLiteStore serves assets packed into a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// OpenSQLite opens (or creates) an asset pack database.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region put
// Put stores encoded image bytes under path, replacing any previous blob.
// The data must decode with one of the registered image formats.
func (s *SQLiteStore) Put(path string, data []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO assets (path, format, width, height, data, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			format = excluded.format,
			width = excluded.width,
			height = excluded.height,
			data = excluded.data,
			imported_at = excluded.imported_at`,
		path, format, cfg.Width, cfg.Height, data, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put asset %s: %w", path, err)
	}
	return nil
}

// #endregion put

// #region import
// Import walks dir and stores every supported image file, keyed by its
// slash-separated relative path without extension. Returns the count stored.
func (s *SQLiteStore) Import(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if !supported(ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		key := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		if err := s.Put(key, data); err != nil {
			log.Printf("skipping %s: %v", p, err)
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("import %s: %w", dir, err)
	}
	return count, nil
}

func supported(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// #endregion import

// #region lookup
// Exists reports whether path has a stored blob.
func (s *SQLiteStore) Exists(ctx context.Context, path string) bool {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM assets WHERE path = ?`, path).Scan(&one)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("asset exists %s: %v", path, err)
	}
	return err == nil
}

// LoadImage decodes the blob stored under path.
func (s *SQLiteStore) LoadImage(ctx context.Context, path string) (image.Image, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM assets WHERE path = ?`, path).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetUnavailable, path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrAssetUnavailable, path, err)
	}
	return img, nil
}

// Paths lists stored asset paths in lexical order.
func (s *SQLiteStore) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM assets ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// #endregion lookup
