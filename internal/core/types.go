package core

import (
	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/pkg/domain"
)

type (
	Transaction     = domain.Transaction
	TransactionView = domain.TransactionView
	PersistentStore = domain.PersistentStore
	RulesEngine     = domain.RulesEngine
	Rule            = domain.Rule
	RuleView        = domain.RuleView
	Change          = domain.Change
	Result          = domain.Result
	Violation       = domain.Violation
	Snapshot        = memory.Snapshot
)

// SnapshotStore is a persistent store whose full state can be exported and
// replaced. Every backend in this module satisfies it.
type SnapshotStore interface {
	PersistentStore
	ExportState() Snapshot
	Checkpoint() (Snapshot, uint64)
	ImportState(Snapshot) error
}
