package core

import (
	"context"
	"time"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/pkg/domain"
)

// Service exposes transactional CRUD, hostel assignment, and resolved detail
// reads over a persistent store.
type Service struct {
	store   PersistentStore
	clock   Clock
	logger  Logger
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for audit timestamps.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger routes service events to logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuditRecorder records mutating operations.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// WithMetricsRecorder observes every operation.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer wraps every operation in a span.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		clock:   systemClock{},
		logger:  noopLogger{},
		audit:   noopAuditRecorder{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// Revision reports the store revision, used as a cache generation.
func (s *Service) Revision() uint64 {
	return s.store.Revision()
}

// run wraps fn with tracing, metrics, logging, and auditing. fn returns the
// id of the affected record when there is one.
func (s *Service) run(ctx context.Context, op string, fn func(context.Context) (string, error)) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, op)
	id, err := fn(ctx)
	duration := time.Since(start)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, duration)

	if err != nil {
		args := []any{"operation", op, "entity_id", id, "duration", duration, "error", err}
		if domain.KindOf(err) == domain.KindInternal {
			s.logger.Error("service operation failed", args...)
		} else {
			s.logger.Warn("service operation rejected", args...)
		}
		s.recordAuditError(ctx, op, id, duration, err)
		return err
	}
	s.logger.Debug("service operation completed", "operation", op, "entity_id", id, "duration", duration)
	s.recordAuditSuccess(ctx, op, id, duration)
	return nil
}

func (s *Service) recordAuditSuccess(ctx context.Context, op, id string, duration time.Duration) {
	s.recordAudit(ctx, op, id, duration, nil)
}

func (s *Service) recordAuditError(ctx context.Context, op, id string, duration time.Duration, err error) {
	s.recordAudit(ctx, op, id, duration, err)
}

func (s *Service) recordAudit(ctx context.Context, op, id string, duration time.Duration, err error) {
	meta, ok := operationMetadata[op]
	if !ok {
		return
	}
	entry := AuditEntry{
		Operation: op,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  id,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
	}
	s.audit.Record(ctx, entry)
}
