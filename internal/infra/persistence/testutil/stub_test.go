package testutil

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
)

func args(values ...any) []driver.NamedValue {
	out := make([]driver.NamedValue, len(values))
	for i, v := range values {
		out[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return out
}

func TestUpsertReplacesRowByFirstColumn(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	for _, query := range []string{
		`INSERT INTO hostel_state(bucket,payload,revision) VALUES($1,$2,$3) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`,
		"INSERT INTO `hostel_state` (`bucket`,`payload`,`revision`) VALUES (?,?,?) ON DUPLICATE KEY UPDATE `payload`=VALUES(`payload`)",
	} {
		for rev := int64(1); rev <= 2; rev++ {
			if _, err := conn.ExecContext(ctx, query, args("beds", []byte("[]"), rev)); err != nil {
				t.Fatalf("exec: %v", err)
			}
		}
	}
	rows := conn.Tables["hostel_state"]
	if len(rows) != 1 || rows[0]["revision"] != int64(2) {
		t.Fatalf("expected one row at revision 2, got %v", rows)
	}

	if _, err := conn.ExecContext(ctx, `INSERT INTO events (id, kind) VALUES (?, ?)`, args("e1", "x")); err != nil {
		t.Fatalf("plain insert: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `INSERT INTO events (id, kind) VALUES (?, ?)`, args("e1", "y")); err != nil {
		t.Fatalf("plain insert: %v", err)
	}
	if len(conn.Tables["events"]) != 2 {
		t.Fatalf("plain inserts should append, got %v", conn.Tables["events"])
	}
}

func TestSelectAndDelete(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.Tables["hostel_state"] = []Row{
		{"bucket": "rooms", "payload": []byte("[1]")},
		{"bucket": "beds", "payload": []byte("[2]")},
	}
	rows, err := conn.QueryContext(ctx, "SELECT `bucket`, `payload` FROM `hostel_state`", nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[1] != "payload" {
		t.Fatalf("unexpected columns %v", cols)
	}
	dest := make([]driver.Value, 2)
	var seen []string
	for rows.Next(dest) == nil {
		seen = append(seen, dest[0].(string))
	}
	if len(seen) != 2 || seen[0] != "rooms" {
		t.Fatalf("unexpected rows %v", seen)
	}

	if _, err := conn.ExecContext(ctx, `DELETE FROM "hostel_state" WHERE "bucket" = $1`, args("rooms")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(conn.Tables["hostel_state"]) != 1 || conn.Tables["hostel_state"][0]["bucket"] != "beds" {
		t.Fatalf("unexpected rows after delete %v", conn.Tables["hostel_state"])
	}
	if _, err := conn.QueryContext(ctx, "UPDATE x SET y = 1", nil); err == nil {
		t.Fatalf("expected unsupported query error")
	}
}

func TestFailureSwitches(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.RowsErr = errors.New("cursor broke")
	rows, err := conn.QueryContext(ctx, "SELECT bucket FROM hostel_state", nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if err := rows.Next(make([]driver.Value, 1)); !errors.Is(err, conn.RowsErr) {
		t.Fatalf("expected rows error, got %v", err)
	}
	conn.RowsErr = nil
	rows, _ = conn.QueryContext(ctx, "SELECT bucket FROM hostel_state", nil)
	if err := rows.Next(make([]driver.Value, 1)); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}

	conn.FailExec = true
	if err := conn.Ping(ctx); err == nil {
		t.Fatalf("ping should fail with FailExec")
	}
	if _, err := conn.ExecContext(ctx, "CREATE TABLE t (a INT)", nil); err == nil {
		t.Fatalf("exec should fail with FailExec")
	}
	if len(conn.Execs) != 1 {
		t.Fatalf("failed statements are still recorded, got %v", conn.Execs)
	}
	conn.FailBegin = true
	if _, err := conn.Begin(); err == nil {
		t.Fatalf("begin should fail with FailBegin")
	}
	conn.FailBegin, conn.FailCommit = false, true
	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tx.Commit(); err == nil {
		t.Fatalf("commit should fail with FailCommit")
	}
}
