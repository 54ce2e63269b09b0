// Package sqlstate keeps the in-memory store durable in a database/sql
// backend. Each snapshot collection is one row of the hostel_state table;
// after a committed transaction only the collections that changed are
// rewritten.
package sqlstate

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/pkg/domain"
)

// Table holds the snapshot buckets for every SQL backend.
const Table = "hostel_state"

// Dialect carries the statements that differ between engines. Upsert takes
// bucket, payload, revision and updated_at in that order.
type Dialect struct {
	Name        string
	CreateTable string
	Upsert      string
}

var _ domain.PersistentStore = (*Store)(nil)

// Store is a memory store whose commits are written through to db.
type Store struct {
	*memory.Store
	db      *sql.DB
	dialect Dialect
	journal memory.Journal
	mu      sync.Mutex
	now     func() time.Time
}

// Open prepares the state table and hydrates a memory store from it. db is
// owned by the returned store.
func Open(ctx context.Context, db *sql.DB, dialect Dialect, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if _, err := db.ExecContext(ctx, dialect.CreateTable); err != nil {
		return nil, fmt.Errorf("%s: create %s: %w", dialect.Name, Table, err)
	}
	s := &Store{
		Store:   memory.NewStore(engine, opts...),
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM `+Table)
	if err != nil {
		return fmt.Errorf("%s: select %s: %w", s.dialect.Name, Table, err)
	}
	defer func() { _ = rows.Close() }()

	loaded := make(map[string][]byte)
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return fmt.Errorf("%s: scan bucket: %w", s.dialect.Name, err)
		}
		loaded[name] = payload
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: read buckets: %w", s.dialect.Name, err)
	}
	if len(loaded) == 0 {
		return nil
	}
	snapshot, err := memory.SnapshotFromBuckets(loaded)
	if err != nil {
		return err
	}
	if err := s.Store.ImportState(snapshot); err != nil {
		return err
	}
	for name, payload := range loaded {
		s.journal.Record(memory.Bucket{Name: name, Payload: payload})
	}
	return nil
}

// RunInTransaction commits fn in memory and then writes the changed
// buckets. A write failure is returned even though memory already holds the
// new state; the next successful write catches the table up.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if err := s.flush(context.WithoutCancel(ctx)); err != nil {
		return res, err
	}
	return res, nil
}

// ImportState replaces the state and writes it through.
func (s *Store) ImportState(snapshot memory.Snapshot) error {
	if err := s.Store.ImportState(snapshot); err != nil {
		return err
	}
	return s.flush(context.Background())
}

func (s *Store) flush(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, err := s.journal.Pending(s.ExportState())
	if err != nil || len(pending) == 0 {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin snapshot write: %w", s.dialect.Name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	revision := int64(s.Revision())
	stamp := s.now().UTC()
	for _, b := range pending {
		if _, err = tx.ExecContext(ctx, s.dialect.Upsert, b.Name, b.Payload, revision, stamp); err != nil {
			return fmt.Errorf("%s: write bucket %s: %w", s.dialect.Name, b.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit snapshot write: %w", s.dialect.Name, err)
	}
	s.journal.Record(pending...)
	return nil
}

// DB exposes the database handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
