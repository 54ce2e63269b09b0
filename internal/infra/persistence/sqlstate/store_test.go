package sqlstate

import (
	"context"
	"strings"
	"testing"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/infra/persistence/testutil"
	"hostelcore/pkg/domain"
)

var stubDialect = Dialect{
	Name:        "stub",
	CreateTable: "CREATE TABLE IF NOT EXISTS " + Table + " (bucket TEXT PRIMARY KEY, payload BLOB, revision INTEGER, updated_at TIMESTAMP)",
	Upsert:      "INSERT INTO " + Table + "(bucket,payload,revision,updated_at) VALUES(?,?,?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload",
}

func countUpserts(conn *testutil.StubConn) int {
	n := 0
	for _, stmt := range conn.Execs {
		if strings.HasPrefix(stmt, "INSERT INTO") {
			n++
		}
	}
	return n
}

func createClass(t *testing.T, s *Store, name string) {
	t.Helper()
	if _, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateAcademicClass(domain.AcademicClass{Name: name})
		return err
	}); err != nil {
		t.Fatalf("create class: %v", err)
	}
}

func TestFlushWritesOnlyChangedBuckets(t *testing.T) {
	db, conn := testutil.NewStubDB()
	s, err := Open(context.Background(), db, stubDialect, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	createClass(t, s, "S1")
	if got, want := countUpserts(conn), len(memory.BucketNames()); got != want {
		t.Fatalf("first flush wrote %d buckets, want %d", got, want)
	}

	createClass(t, s, "S2")
	if got, want := countUpserts(conn), len(memory.BucketNames())+1; got != want {
		t.Fatalf("second flush should add one write, have %d want %d", got, want)
	}
	rows := conn.Tables[Table]
	if len(rows) != len(memory.BucketNames()) {
		t.Fatalf("expected one row per bucket, got %d", len(rows))
	}
	for _, row := range rows {
		if row["bucket"] == "academicClasses" && row["revision"] != int64(2) {
			t.Fatalf("expected revision 2 on academicClasses, got %v", row["revision"])
		}
	}
}

func TestFailedFlushIsRetriedByNextCommit(t *testing.T) {
	db, conn := testutil.NewStubDB()
	s, err := Open(context.Background(), db, stubDialect, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	conn.FailCommit = true
	if _, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateGuardian(domain.Guardian{Name: "Jane"})
		return err
	}); err == nil || !strings.Contains(err.Error(), "commit snapshot write") {
		t.Fatalf("expected commit failure, got %v", err)
	}
	conn.FailCommit = false
	conn.Tables[Table] = nil

	createClass(t, s, "S1")
	written := map[any]bool{}
	for _, row := range conn.Tables[Table] {
		written[row["bucket"]] = true
	}
	if !written["guardians"] || !written["academicClasses"] {
		t.Fatalf("expected guardians and academicClasses rewritten, got %v", written)
	}
}

func TestOpenReportsCreateFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailExec = true
	if _, err := Open(context.Background(), db, stubDialect, nil); err == nil || !strings.Contains(err.Error(), "create "+Table) {
		t.Fatalf("expected create failure, got %v", err)
	}
}

func TestOpenHydratesWithoutRewriting(t *testing.T) {
	db, conn := testutil.NewStubDB()
	first, err := Open(context.Background(), db, stubDialect, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	createClass(t, first, "S1")
	before := countUpserts(conn)

	second, err := Open(context.Background(), db, stubDialect, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(second.ExportState().AcademicClasses); got != 1 {
		t.Fatalf("expected hydrated class, got %d", got)
	}
	if err := second.ImportState(second.ExportState()); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := countUpserts(conn); got != before {
		t.Fatalf("unchanged state should not be rewritten, %d upserts after %d", got, before)
	}
}
