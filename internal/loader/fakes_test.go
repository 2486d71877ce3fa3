package loader

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

type execCall struct {
	sql  string
	args []any
}

// recordingConn records every statement and fails or panics on demand.
type recordingConn struct {
	calls    []execCall
	existing map[string]bool
	fail     func(sql string) error
	panicOn  string
}

func newRecordingConn() *recordingConn {
	return &recordingConn{existing: make(map[string]bool)}
}

func (c *recordingConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.calls = append(c.calls, execCall{sql: sql, args: args})
	if err := ctx.Err(); err != nil {
		return pgconn.CommandTag{}, err
	}
	if c.panicOn != "" && strings.Contains(sql, c.panicOn) {
		panic("driver exploded")
	}
	if c.fail != nil {
		if err := c.fail(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (c *recordingConn) QueryRow(ctx context.Context, sql string, args ...any) sheetload.Row {
	name, _ := args[0].(string)
	return boolRow{value: c.existing[name]}
}

func (c *recordingConn) statements() []string {
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.sql
	}
	return out
}

func (c *recordingConn) inserts() []execCall {
	var out []execCall
	for _, call := range c.calls {
		if strings.HasPrefix(call.sql, "INSERT") {
			out = append(out, call)
		}
	}
	return out
}

type boolRow struct {
	value bool
	err   error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	p, ok := dest[0].(*bool)
	if !ok {
		return errors.New("expected *bool")
	}
	*p = r.value
	return nil
}

type stubApprover struct {
	approve bool
	err     error
	asked   []string
}

func (a *stubApprover) RequestApproval(ctx context.Context, table string) (bool, error) {
	a.asked = append(a.asked, table)
	return a.approve, a.err
}

func str(s string) *string { return &s }

func record(sheet string, row int, kv ...any) sheetload.ImportRecord {
	rec := sheetload.ImportRecord{WorksheetName: sheet, RowPosition: row}
	for i := 0; i < len(kv); i += 2 {
		var v *string
		if s, ok := kv[i+1].(string); ok {
			v = str(s)
		}
		rec.Values = append(rec.Values, sheetload.RecordValue{FieldKey: kv[i].(string), Value: v})
	}
	return rec
}
