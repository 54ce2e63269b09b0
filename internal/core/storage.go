package core

import (
	"fmt"
	"io"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/infra/persistence/mysql"
	"hostelcore/internal/infra/persistence/postgres"
	"hostelcore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
	StorageMySQL    StorageDriver = "mysql"    // MySQL server through gorm
)

// StorageOptions selects and locates a backend. Empty DSNs and paths fall
// back to each backend's default.
type StorageOptions struct {
	Driver      StorageDriver
	SQLitePath  string
	PostgresDSN string
	MySQLDSN    string
}

// OpenPersistentStore opens the configured backend. Durable backends load
// their last snapshot before returning. The returned closer is a no-op for
// the memory store.
func OpenPersistentStore(opts StorageOptions, engine *RulesEngine, storeOpts ...memory.Option) (SnapshotStore, io.Closer, error) {
	switch opts.Driver {
	case StorageMemory:
		return memory.NewStore(engine, storeOpts...), nopCloser{}, nil
	case StorageSQLite, "":
		s, err := sqlite.NewStore(opts.SQLitePath, engine, storeOpts...)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case StoragePostgres:
		s, err := postgres.NewStore(opts.PostgresDSN, engine, storeOpts...)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case StorageMySQL:
		s, err := mysql.NewStore(opts.MySQLDSN, engine, storeOpts...)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %s", opts.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
