package workbook

// Range is the used area of a worksheet. Rows and columns are 1-based.
// The zero Range describes an empty worksheet.
type Range struct {
	FirstRow   int
	LastRow    int
	LastColumn int
}

// Empty reports whether the worksheet holds no used cells.
func (r Range) Empty() bool {
	return r.LastRow == 0 || r.LastColumn == 0
}

// Sheet is read-only access to one worksheet.
type Sheet interface {
	Name() string
	Hidden() bool
	UsedRange() Range

	// IsRowEmpty reports whether no cell in the row holds a value or formula.
	IsRowEmpty(row int) bool

	// IsColumnEmpty reports whether no cell in the column holds a value or formula.
	IsColumnEmpty(col int) bool

	// Value returns the displayed text of a cell, computing formulas.
	Value(row, col int) (string, error)

	// CachedValue returns the value stored in the file for a cell.
	CachedValue(row, col int) (string, error)
}

// Book is an open workbook.
type Book interface {
	// Sheets returns the worksheets in workbook order.
	Sheets() ([]Sheet, error)
	Close() error
}
