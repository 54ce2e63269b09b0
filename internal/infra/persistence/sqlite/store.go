// Package sqlite keeps hostel state in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/infra/persistence/sqlstate"
	"hostelcore/pkg/domain"
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "hostelcore.db"

// Dialect is the SQLite flavour of the state table.
var Dialect = sqlstate.Dialect{
	Name: "sqlite",
	CreateTable: `CREATE TABLE IF NOT EXISTS ` + sqlstate.Table + ` (
		bucket     TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		revision   INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	Upsert: `INSERT INTO ` + sqlstate.Table + `(bucket,payload,revision,updated_at) VALUES(?,?,?,?)
		ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload, revision=excluded.revision, updated_at=excluded.updated_at`,
}

// Store is a SQLite-backed persistent store.
type Store struct {
	*sqlstate.Store
	path string
}

// NewStore opens or creates the database file at path, creating parent
// directories as needed.
func NewStore(path string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("sqlite: create %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; the memory store already serialises transactions
	db.SetMaxOpenConns(1)
	inner, err := sqlstate.Open(context.Background(), db, Dialect, engine, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{Store: inner, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }
