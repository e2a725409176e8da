// Package archstore persists named architectures in a SQLite catalog
// and moves them between installations as zstd-compressed archives.
package archstore

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"qirc/internal/architecture"
	"qirc/internal/logging"
	"qirc/internal/qerrors"
)

const schema = `
CREATE TABLE IF NOT EXISTS architectures (
    name       TEXT PRIMARY KEY,
    doc        TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Store is a catalog of named architectures backed by SQLite.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the catalog database at dbPath, creating
// parent directories as needed.
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to create store directory")
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to open database")
	}

	// Set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to set pragma")
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to initialize schema")
	}

	logger.Debug("architecture store opened", map[string]interface{}{
		"path": dbPath,
	})
	return &Store{conn: conn, logger: logger, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Save inserts or replaces an architecture under a name.
func (s *Store) Save(name string, arch *architecture.Architecture) error {
	if name == "" {
		return qerrors.New(qerrors.StoreFailure, "architecture name must not be empty")
	}
	doc, err := json.Marshal(arch)
	if err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to encode architecture %q", name)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.conn.Exec(`
		INSERT INTO architectures (name, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		name, string(doc), now, now)
	if err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to save architecture %q", name)
	}
	s.logger.Info("architecture saved", map[string]interface{}{
		"name":  name,
		"nodes": arch.NNodes(),
	})
	return nil
}

// Load fetches an architecture by name.
func (s *Store) Load(name string) (*architecture.Architecture, error) {
	var doc string
	err := s.conn.QueryRow(`SELECT doc FROM architectures WHERE name = ?`, name).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, qerrors.New(qerrors.StoreFailure, "no architecture named %q", name)
	}
	if err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to load architecture %q", name)
	}
	arch := architecture.New()
	if err := json.Unmarshal([]byte(doc), arch); err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "stored architecture %q is corrupt", name)
	}
	return arch, nil
}

// Entry describes one catalog row.
type Entry struct {
	Name      string
	UpdatedAt string
}

// List returns the catalog entries ordered by name.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.conn.Query(`SELECT name, updated_at FROM architectures ORDER BY name`)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to list architectures")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.UpdatedAt); err != nil {
			return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to scan catalog row")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, qerrors.Wrap(qerrors.StoreFailure, err, "failed to list architectures")
	}
	return out, nil
}

// Delete removes an architecture by name. Deleting a missing name is
// an error so typos surface.
func (s *Store) Delete(name string) error {
	res, err := s.conn.Exec(`DELETE FROM architectures WHERE name = ?`, name)
	if err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to delete architecture %q", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return qerrors.Wrap(qerrors.StoreFailure, err, "failed to delete architecture %q", name)
	}
	if n == 0 {
		return qerrors.New(qerrors.StoreFailure, "no architecture named %q", name)
	}
	return nil
}
