package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/infra/persistence/testutil"
	"hostelcore/pkg/domain"
)

func openStub(t *testing.T) (*testutil.StubConn, func()) {
	t.Helper()
	sqlDB, conn := testutil.NewStubDB()
	restore := OverrideOpen(func(string) (*gorm.DB, error) {
		return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	})
	return conn, restore
}

func TestNewStoreEnsuresStateTable(t *testing.T) {
	conn, restore := openStub(t)
	defer restore()
	if _, err := NewStore("", nil); err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if len(conn.Execs) == 0 || !strings.Contains(conn.Execs[0], "CREATE TABLE IF NOT EXISTS `hostel_state`") {
		t.Fatalf("expected hostel_state DDL first, got %v", conn.Execs)
	}
}

func TestRunInTransactionPersistsAndReloads(t *testing.T) {
	conn, restore := openStub(t)
	defer restore()
	store, err := NewStore("ignored", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateRoom(domain.Room{RoomNumber: "M-1", Capacity: 4})
		return err
	}); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if got, want := len(conn.Tables["hostel_state"]), len(memory.BucketNames()); got != want {
		t.Fatalf("expected %d bucket rows, got %d", want, got)
	}
	writes := len(conn.Execs)
	if err := store.ImportState(store.ExportState()); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(conn.Execs) != writes {
		t.Fatalf("unchanged state should not be rewritten: %v", conn.Execs[writes:])
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateRoom(domain.Room{RoomNumber: "M-2", Capacity: 2})
		return err
	}); err != nil {
		t.Fatalf("create second room: %v", err)
	}
	if got, want := len(conn.Tables["hostel_state"]), len(memory.BucketNames()); got != want {
		t.Fatalf("expected %d bucket rows after upsert, got %d", want, got)
	}
	for _, row := range conn.Tables["hostel_state"] {
		if row["bucket"] == "rooms" && row["revision"] != int64(3) {
			t.Fatalf("expected rooms at revision 3, got %v", row["revision"])
		}
	}

	reloaded, err := NewStore("ignored", nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	rooms := reloaded.ExportState().Rooms
	numbers := map[string]bool{}
	for _, r := range rooms {
		numbers[r.RoomNumber] = true
	}
	if len(rooms) != 2 || !numbers["M-1"] || !numbers["M-2"] {
		t.Fatalf("expected rooms restored, got %+v", rooms)
	}
}

func TestNewStorePropagatesOpenError(t *testing.T) {
	restore := OverrideOpen(func(string) (*gorm.DB, error) { return nil, errors.New("refused") })
	defer restore()
	if _, err := NewStore("dsn", nil); err == nil || !strings.Contains(err.Error(), "open mysql") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestPersistFailureSurfaces(t *testing.T) {
	conn, restore := openStub(t)
	defer restore()
	store, err := NewStore("ignored", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	conn.FailBegin = true
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateGuardian(domain.Guardian{Name: "G"})
		return err
	})
	if err == nil || !strings.Contains(err.Error(), "persist snapshot") {
		t.Fatalf("expected persist failure, got %v", err)
	}
}
