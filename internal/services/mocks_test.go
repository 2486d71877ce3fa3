package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/sheetload/internal/source"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

type mockConnector struct {
	pool   *pgxpool.Pool
	err    error
	closed bool
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

func (m *mockConnector) Close() error {
	m.closed = true
	return nil
}

type mockOpener struct {
	book   workbook.Book
	err    error
	opened []source.Location
}

func (m *mockOpener) Open(_ context.Context, loc source.Location) (workbook.Book, error) {
	m.opened = append(m.opened, loc)
	if m.err != nil {
		return nil, m.err
	}
	return m.book, nil
}

type mockWriter struct {
	result   sheetload.WriteResult
	err      error
	calls    int
	conn     sheetload.DBConnection
	records  []sheetload.ImportRecord
	settings sheetload.SQLSettings
}

func (m *mockWriter) Write(_ context.Context, conn sheetload.DBConnection, records []sheetload.ImportRecord, settings sheetload.SQLSettings) (sheetload.WriteResult, error) {
	m.calls++
	m.conn = conn
	m.records = records
	m.settings = settings
	return m.result, m.err
}

type mockConn struct{}

func (mockConn) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("OK"), nil
}

func (mockConn) QueryRow(_ context.Context, _ string, _ ...any) sheetload.Row {
	return nil
}

type mockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *mockLogger) add(level, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, level+" "+fmt.Sprintf(format, args...))
}

func (m *mockLogger) Verbose(format string, args ...any) { m.add("DEBUG", format, args...) }
func (m *mockLogger) Info(format string, args ...any)    { m.add("INFO", format, args...) }
func (m *mockLogger) Warn(format string, args ...any)    { m.add("WARN", format, args...) }
func (m *mockLogger) Error(format string, args ...any)   { m.add("ERROR", format, args...) }

func (m *mockLogger) has(line string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if l == line {
			return true
		}
	}
	return false
}

func (m *mockLogger) contains(fragment string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if strings.Contains(l, fragment) {
			return true
		}
	}
	return false
}

// panickingBook fails the way a corrupt workbook can inside a third-party reader.
type panickingBook struct{ closed bool }

func (b *panickingBook) Sheets() ([]workbook.Sheet, error) { panic("index out of range") }
func (b *panickingBook) Close() error                      { b.closed = true; return nil }
