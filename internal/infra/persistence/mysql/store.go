// Package mysql keeps hostel state in MySQL through gorm. It shares the
// hostel_state bucket layout with the database/sql backends.
package mysql

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

const defaultDSN = "root:root@tcp(127.0.0.1:3306)/hostelcore?charset=utf8mb4&parseTime=True&loc=Local"

type stateRow struct {
	Bucket    string    `gorm:"column:bucket;primaryKey;size:64"`
	Payload   []byte    `gorm:"column:payload;type:longblob;not null"`
	Revision  int64     `gorm:"column:revision;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (stateRow) TableName() string { return "hostel_state" }

const stateDDL = "CREATE TABLE IF NOT EXISTS `hostel_state` (" +
	"`bucket` VARCHAR(64) NOT NULL PRIMARY KEY, " +
	"`payload` LONGBLOB NOT NULL, " +
	"`revision` BIGINT NOT NULL, " +
	"`updated_at` DATETIME(6) NOT NULL)"

var (
	gormOpen = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	}
	openMu sync.Mutex
)

// Store is a memory store whose commits are written through to MySQL.
type Store struct {
	*memory.Store
	db      *gorm.DB
	journal memory.Journal
	mu      sync.Mutex
}

// NewStore connects with dsn (defaultDSN when empty), ensures the state table
// exists, and hydrates the in-memory store from any stored snapshot.
func NewStore(dsn string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := gormOpen(dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return newStore(context.Background(), db, engine, opts...)
}

func newStore(ctx context.Context, db *gorm.DB, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if err := db.WithContext(ctx).Exec(stateDDL).Error; err != nil {
		return nil, fmt.Errorf("ensure hostel_state: %w", err)
	}
	var rows []stateRow
	if err := db.WithContext(ctx).Model(&stateRow{}).Select("bucket", "payload").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select hostel_state: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine, opts...), db: db}
	if len(rows) == 0 {
		return s, nil
	}
	buckets := make(map[string][]byte, len(rows))
	for _, r := range rows {
		buckets[r.Bucket] = r.Payload
	}
	snapshot, err := memory.SnapshotFromBuckets(buckets)
	if err != nil {
		return nil, err
	}
	if err := s.Store.ImportState(snapshot); err != nil {
		return nil, err
	}
	for _, r := range rows {
		s.journal.Record(memory.Bucket{Name: r.Bucket, Payload: r.Payload})
	}
	return s, nil
}

// RunInTransaction applies fn and, once it commits, rewrites the buckets it
// changed.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if err := s.persist(context.WithoutCancel(ctx)); err != nil {
		return res, err
	}
	return res, nil
}

// ImportState replaces the state and writes it through to MySQL.
func (s *Store) ImportState(snapshot memory.Snapshot) error {
	if err := s.Store.ImportState(snapshot); err != nil {
		return err
	}
	return s.persist(context.Background())
}

// DB exposes the gorm handle for integration testing hooks.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, err := s.journal.Pending(s.ExportState())
	if err != nil || len(pending) == 0 {
		return err
	}
	revision := int64(s.Revision())
	stamp := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range pending {
			row := stateRow{Bucket: b.Name, Payload: b.Payload, Revision: revision, UpdatedAt: stamp}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert %s: %w", b.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	s.journal.Record(pending...)
	return nil
}

// OverrideOpen swaps the gorm opener for tests and returns a restore function.
func OverrideOpen(fn func(dsn string) (*gorm.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := gormOpen
	gormOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		gormOpen = prev
	}
}
