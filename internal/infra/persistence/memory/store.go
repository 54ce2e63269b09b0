// Package memory holds hostel state in process. The durable backends wrap
// it and persist its snapshots.
package memory

import (
	"context"
	"sync"
	"time"

	"hostelcore/internal/infra/ids"
	"hostelcore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// Store serialises writers and gives readers a copy of committed state.
// Every transaction works on a clone that replaces the live state only when
// fn succeeds and the rules engine reports nothing blocking.
type Store struct {
	mu       sync.RWMutex
	state    memoryState
	revision uint64

	engine *domain.RulesEngine
	clock  func() time.Time
	ids    domain.IDGenerator
}

type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock sets the source of createdAt and updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.clock = now
		}
	}
}

// NewStore returns an empty store. A nil engine evaluates no rules.
func NewStore(engine *domain.RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		state:  newMemoryState(),
		engine: engine,
		clock:  func() time.Time { return time.Now().UTC() },
		ids:    ids.UUID{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportState copies the committed state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// Checkpoint copies the committed state together with the revision it was
// read at.
func (s *Store) Checkpoint() (Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state), s.revision
}

// ImportState swaps in snapshot after dropping dangling references. Generators
// that track issued ids are told about every imported id.
func (s *Store) ImportState(snapshot Snapshot) error {
	cleaned := migrateSnapshot(snapshot)
	next := memoryStateFromSnapshot(cleaned)

	s.mu.Lock()
	defer s.mu.Unlock()
	if tracker, ok := s.ids.(interface{ Observe(string) }); ok {
		for _, id := range cleaned.IDs() {
			tracker.Observe(id)
		}
	}
	s.state = next
	s.revision++
	return nil
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	tx := &transaction{store: s, state: s.state.clone(), now: s.clock()}
	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}
	res, err := s.engine.Evaluate(ctx, newTransactionView(&tx.state), tx.changes)
	switch {
	case err != nil:
		return domain.Result{}, err
	case res.HasBlocking():
		return res, domain.RuleViolationError{Result: res}
	}
	s.state = tx.state
	s.revision++
	return res, nil
}

// View runs fn over a private copy of the committed state.
func (s *Store) View(ctx context.Context, fn func(domain.TransactionView) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	committed := s.state.clone()
	s.mu.RUnlock()
	return fn(newTransactionView(&committed))
}
