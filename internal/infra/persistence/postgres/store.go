// Package postgres keeps hostel state in PostgreSQL through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/infra/persistence/sqlstate"
	"hostelcore/pkg/domain"
)

const defaultDSN = "postgres://localhost/hostelcore?sslmode=disable"

// Dialect is the PostgreSQL flavour of the state table.
var Dialect = sqlstate.Dialect{
	Name: "postgres",
	CreateTable: `CREATE TABLE IF NOT EXISTS ` + sqlstate.Table + ` (
		bucket     TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		revision   BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	Upsert: `INSERT INTO ` + sqlstate.Table + `(bucket,payload,revision,updated_at) VALUES($1,$2,$3,$4)
		ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload, revision=EXCLUDED.revision, updated_at=EXCLUDED.updated_at`,
}

var (
	openMu  sync.Mutex
	sqlOpen = sql.Open
)

// Store is a PostgreSQL-backed persistent store.
type Store struct {
	*sqlstate.Store
}

// NewStore connects to dsn (a local default when empty), verifies the
// connection and loads any stored state.
func NewStore(dsn string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen("pgx", dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	inner, err := sqlstate.Open(ctx, db, Dialect, engine, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{Store: inner}, nil
}

// OverrideSQLOpen replaces the connection opener until the returned restore
// func runs.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) (restore func()) {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}
