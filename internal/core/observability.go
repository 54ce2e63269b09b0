package core

import (
	"context"
	"time"

	"hostelcore/pkg/domain"
)

// Logger receives structured service events. Arguments follow the slog
// key/value convention.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Clock supplies timestamps for audit entries.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// AuditStatus is the outcome recorded for a mutating operation.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutating service operation.
type AuditEntry struct {
	Operation string
	Entity    domain.EntityType
	Action    domain.Action
	EntityID  string
	Status    AuditStatus
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// MetricsRecorder observes service operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts a span around a service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is ended once with the operation error, if any.
type TraceSpan interface {
	End(err error)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type operationMeta struct {
	entity domain.EntityType
	action domain.Action
}

// operationMetadata maps mutating operation names to the audited entity.
// Reads are not audited.
var operationMetadata = buildOperationMetadata()

func buildOperationMetadata() map[string]operationMeta {
	entities := []domain.EntityType{
		domain.EntityPackageType,
		domain.EntityBoardingPackage,
		domain.EntityMenuItem,
		domain.EntityMealType,
		domain.EntityPackageMenuItem,
		domain.EntityMealPackage,
		domain.EntityLookup,
		domain.EntityPerson,
		domain.EntityStaff,
		domain.EntityRoom,
		domain.EntityBed,
		domain.EntityGuardian,
		domain.EntityAcademicClass,
		domain.EntityStudent,
	}
	out := make(map[string]operationMeta, len(entities)*3+3)
	for _, entity := range entities {
		for _, action := range []domain.Action{domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete} {
			out[string(action)+"_"+string(entity)] = operationMeta{entity: entity, action: action}
		}
	}
	out[opAssignHostel] = operationMeta{entity: domain.EntityStudent, action: domain.ActionUpdate}
	out[opRemoveFromHostel] = operationMeta{entity: domain.EntityStudent, action: domain.ActionUpdate}
	out[opSetBedMaintenance] = operationMeta{entity: domain.EntityBed, action: domain.ActionUpdate}
	return out
}

const (
	opAssignHostel      = "assign_hostel"
	opRemoveFromHostel  = "remove_from_hostel"
	opSetBedMaintenance = "set_bed_maintenance"
)

func operationName(action domain.Action, entity domain.EntityType) string {
	return string(action) + "_" + string(entity)
}
