//go:build unit

package repository_test

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	sql  string
	args []any
}

// stubDBTX answers statements in the order they are issued.
type stubDBTX struct {
	execs []execResult
	rows  []stubRow
	query []queryResult
	calls []call
}

type execResult struct {
	tag pgconn.CommandTag
	err error
}

type queryResult struct {
	rows *stubRows
	err  error
}

func (s *stubDBTX) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, call{sql: sql, args: args})
	if len(s.execs) == 0 {
		panic("unexpected Exec: " + sql)
	}
	r := s.execs[0]
	s.execs = s.execs[1:]
	return r.tag, r.err
}

func (s *stubDBTX) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, call{sql: sql, args: args})
	if len(s.query) == 0 {
		panic("unexpected Query: " + sql)
	}
	r := s.query[0]
	s.query = s.query[1:]
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (s *stubDBTX) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.calls = append(s.calls, call{sql: sql, args: args})
	if len(s.rows) == 0 {
		panic("unexpected QueryRow: " + sql)
	}
	r := s.rows[0]
	s.rows = s.rows[1:]
	return r
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type stubRows struct {
	data [][]any
	pos  int
	err  error
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	return assign(r.data[r.pos-1], dest)
}

func (r *stubRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i, v := range values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}
