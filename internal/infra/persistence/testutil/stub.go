// Package testutil is a fake database/sql driver for the SQL state stores.
// It recognises the insert, upsert, delete and select shapes those stores
// emit with either double-quote or backtick identifiers.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync/atomic"
)

// Row maps lower-case column names to driver values.
type Row = map[string]any

// StubConn is the single connection behind a stub DB. Tables are keyed by
// lower-case table name.
type StubConn struct {
	Execs      []string
	Tables     map[string][]Row
	FailExec   bool
	FailBegin  bool
	FailCommit bool
	RowsErr    error
}

var driverCount atomic.Int64

// NewStubDB registers a fresh driver and returns a DB bound to it.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Tables: make(map[string][]Row)}
	name := fmt.Sprintf("hostel-stub-%d", driverCount.Add(1))
	sql.Register(name, connector{conn})
	db, err := sql.Open(name, "")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type connector struct{ conn *StubConn }

func (c connector) Open(string) (driver.Conn, error) { return c.conn, nil }

var (
	insertRe = regexp.MustCompile(`(?is)^\s*insert\s+into\s+([\w"` + "`" + `]+)\s*\(([^)]*)\)`)
	deleteRe = regexp.MustCompile(`(?is)^\s*delete\s+from\s+([\w"` + "`" + `]+)\s+where\s+([\w"` + "`" + `]+)\s*=`)
	selectRe = regexp.MustCompile(`(?is)^\s*select\s+(.+?)\s+from\s+([\w"` + "`" + `]+)`)
	upsertRe = regexp.MustCompile(`(?i)on\s+(conflict|duplicate\s+key)`)
)

var errFailExec = errors.New("stub: exec failed")

func name(raw string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(raw), "`\""))
}

func names(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = name(p)
	}
	return out
}

func (c *StubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("stub: prepared statements unsupported: %s", query)
}

func (c *StubConn) Close() error { return nil }

func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, errors.New("stub: begin failed")
	}
	return stubTx{c}, nil
}

// Ping fails together with FailExec.
func (c *StubConn) Ping(context.Context) error {
	if c.FailExec {
		return errFailExec
	}
	return nil
}

// ExecContext records query and applies inserts and deletes. An upsert
// replaces any row sharing its first column.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.Execs = append(c.Execs, query)
	if c.FailExec {
		return nil, errFailExec
	}
	if m := insertRe.FindStringSubmatch(query); m != nil {
		table, cols := name(m[1]), names(m[2])
		if len(cols) != len(args) {
			return nil, fmt.Errorf("stub: %d columns but %d args for %s", len(cols), len(args), table)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = args[i].Value
		}
		if upsertRe.MatchString(query) {
			c.remove(table, cols[0], row[cols[0]])
		}
		c.Tables[table] = append(c.Tables[table], row)
		return driver.RowsAffected(1), nil
	}
	if m := deleteRe.FindStringSubmatch(query); m != nil {
		if len(args) == 0 {
			return nil, fmt.Errorf("stub: delete without args: %s", query)
		}
		c.remove(name(m[1]), name(m[2]), args[0].Value)
	}
	return driver.RowsAffected(1), nil
}

func (c *StubConn) remove(table, col string, value any) {
	rows := c.Tables[table][:0:0]
	for _, row := range c.Tables[table] {
		if row[col] != value {
			rows = append(rows, row)
		}
	}
	c.Tables[table] = rows
}

// QueryContext serves "SELECT a, b FROM t" from Tables, ignoring any WHERE.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	m := selectRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("stub: unsupported query: %s", query)
	}
	cols := names(m[1])
	stored := c.Tables[name(m[2])]
	values := make([][]driver.Value, len(stored))
	for i, row := range stored {
		values[i] = make([]driver.Value, len(cols))
		for j, col := range cols {
			values[i][j] = row[col]
		}
	}
	return &cursor{cols: cols, values: values, err: c.RowsErr}, nil
}

type stubTx struct{ conn *StubConn }

func (t stubTx) Commit() error {
	if t.conn.FailCommit {
		return errors.New("stub: commit failed")
	}
	return nil
}

func (stubTx) Rollback() error { return nil }

type cursor struct {
	cols   []string
	values [][]driver.Value
	err    error
}

func (r *cursor) Columns() []string { return r.cols }

func (r *cursor) Close() error { return nil }

// Next reports err, when set, once the rows run out.
func (r *cursor) Next(dest []driver.Value) error {
	if len(r.values) == 0 {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.values[0])
	r.values = r.values[1:]
	return nil
}
