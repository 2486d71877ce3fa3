package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelBook reads .xlsx workbooks through excelize.
type ExcelBook struct {
	file *excelize.File
}

// Open opens a workbook from the local filesystem.
func Open(path string) (*ExcelBook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &ExcelBook{file: f}, nil
}

// OpenReader opens a workbook from a stream, e.g. an object storage download.
func OpenReader(r io.Reader) (*ExcelBook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return &ExcelBook{file: f}, nil
}

// Sheets returns every worksheet in workbook order, hidden ones included.
func (b *ExcelBook) Sheets() ([]Sheet, error) {
	names := b.file.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		s, err := newExcelSheet(b.file, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

// Close releases the workbook and any temporary files excelize created.
func (b *ExcelBook) Close() error {
	return b.file.Close()
}

type excelSheet struct {
	file     *excelize.File
	name     string
	hidden   bool
	used     Range
	usedRows map[int]bool
	usedCols map[int]bool
}

func newExcelSheet(f *excelize.File, name string) (*excelSheet, error) {
	visible, err := f.GetSheetVisible(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read visibility of sheet %q: %w", name, err)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", name, err)
	}

	s := &excelSheet{
		file:     f,
		name:     name,
		hidden:   !visible,
		usedRows: make(map[int]bool),
		usedCols: make(map[int]bool),
	}

	// Formula cells saved without a cached result read back empty but are
	// still present in the row data, so blank cells are checked for a formula.
	// Only cells the sheet data holds are visited, never the declared dimension.
	for i, row := range rows {
		for j, v := range row {
			if v != "" {
				s.mark(i+1, j+1)
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				continue
			}
			if formula, err := f.GetCellFormula(name, cell); err == nil && formula != "" {
				s.mark(i+1, j+1)
			}
		}
	}

	return s, nil
}

func (s *excelSheet) mark(row, col int) {
	s.usedRows[row] = true
	s.usedCols[col] = true
	if s.used.FirstRow == 0 || row < s.used.FirstRow {
		s.used.FirstRow = row
	}
	s.used.LastRow = max(s.used.LastRow, row)
	s.used.LastColumn = max(s.used.LastColumn, col)
}

func (s *excelSheet) Name() string               { return s.name }
func (s *excelSheet) Hidden() bool               { return s.hidden }
func (s *excelSheet) UsedRange() Range           { return s.used }
func (s *excelSheet) IsRowEmpty(row int) bool    { return !s.usedRows[row] }
func (s *excelSheet) IsColumnEmpty(col int) bool { return !s.usedCols[col] }

func (s *excelSheet) Value(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}

	formula, err := s.file.GetCellFormula(s.name, cell)
	if err != nil {
		return "", err
	}
	if formula != "" {
		return s.file.CalcCellValue(s.name, cell)
	}
	return s.file.GetCellValue(s.name, cell)
}

func (s *excelSheet) CachedValue(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return s.file.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
}

var (
	_ Book  = (*ExcelBook)(nil)
	_ Sheet = (*excelSheet)(nil)
)
