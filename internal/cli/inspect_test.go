package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sheetload/internal/extract"
	"github.com/vvka-141/sheetload/internal/logging"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

type unreadableBook struct{}

func (unreadableBook) Sheets() ([]workbook.Sheet, error) { return nil, errors.New("zip: not a valid zip file") }
func (unreadableBook) Close() error                      { return nil }

func newInspectExtractor() *extract.Extractor {
	return extract.NewExtractor(sheetload.DefaultParseSettings(), logging.NewNullLogger())
}

func TestInspectBook(t *testing.T) {
	book := workbook.NewMemoryBook(
		workbook.NewMemorySheet("People", [][]string{
			{"First Name", "???"},
			{"Ann", "x"},
			{"Bob", ""},
		}),
		workbook.NewMemorySheet("Secret", [][]string{{"A"}, {"1"}}).Hide(),
	)

	var out bytes.Buffer
	require.NoError(t, inspectBook(context.Background(), &out, book, newInspectExtractor()))

	text := out.String()
	assert.Contains(t, text, `Worksheet "People"`)
	assert.Contains(t, text, "-> FirstName")
	assert.Contains(t, text, "-> Column2")
	assert.Contains(t, text, "warning: Column name in position 2 is empty or contains only special characters")
	assert.Contains(t, text, "2 records, 1 warnings, 0 errors")
	assert.Contains(t, text, "1 Worksheets, 2 Total Records, 1 Warnings, 0 Errors")
	assert.NotContains(t, text, "Secret")
}

func TestInspectBook_NoWorksheets(t *testing.T) {
	book := workbook.NewMemoryBook(workbook.NewMemorySheet("Secret", [][]string{{"A"}}).Hide())

	err := inspectBook(context.Background(), &bytes.Buffer{}, book, newInspectExtractor())
	assert.ErrorIs(t, err, sheetload.ErrNoWorksheets)
}

func TestInspectBook_UnreadableWorkbook(t *testing.T) {
	err := inspectBook(context.Background(), &bytes.Buffer{}, unreadableBook{}, newInspectExtractor())
	assert.ErrorIs(t, err, sheetload.ErrParseFailed)
}

func TestRunInspect_Workbook(t *testing.T) {
	dir := inTempDir(t)
	path := writePeopleWorkbook(t, dir)

	cmd := newTestCmd(t)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, runInspect(cmd, []string{path}))
	assert.Contains(t, out.String(), "-> Age")
	assert.Contains(t, out.String(), "1 Worksheets, 2 Total Records, 0 Warnings, 0 Errors")
}

func TestRunInspect_SheetFilter(t *testing.T) {
	dir := inTempDir(t)
	path := writePeopleWorkbook(t, dir)

	cmd := newTestCmd(t, "--exclude-sheet", "people")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := runInspect(cmd, []string{path})
	assert.ErrorIs(t, err, sheetload.ErrNoWorksheets)
}
