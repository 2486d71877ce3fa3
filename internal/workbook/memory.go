package workbook

type cellKey struct{ row, col int }

// MemorySheet is an in-memory worksheet for tests.
// Builder methods mutate and return the receiver.
type MemorySheet struct {
	name       string
	hidden     bool
	values     map[cellKey]string
	cached     map[cellKey]string
	valueErrs  map[cellKey]error
	cachedErrs map[cellKey]error
}

// NewMemorySheet creates a worksheet whose rows[i][j] is the cell at row i+1, column j+1.
func NewMemorySheet(name string, rows [][]string) *MemorySheet {
	s := &MemorySheet{
		name:       name,
		values:     make(map[cellKey]string),
		cached:     make(map[cellKey]string),
		valueErrs:  make(map[cellKey]error),
		cachedErrs: make(map[cellKey]error),
	}
	for i, row := range rows {
		for j, v := range row {
			if v != "" {
				s.values[cellKey{i + 1, j + 1}] = v
			}
		}
	}
	return s
}

// Hide marks the worksheet hidden.
func (s *MemorySheet) Hide() *MemorySheet {
	s.hidden = true
	return s
}

// SetCell sets the displayed value of a cell.
func (s *MemorySheet) SetCell(row, col int, v string) *MemorySheet {
	s.values[cellKey{row, col}] = v
	return s
}

// SetCached sets the stored value returned by CachedValue.
// Without it CachedValue returns the displayed value.
func (s *MemorySheet) SetCached(row, col int, v string) *MemorySheet {
	s.cached[cellKey{row, col}] = v
	return s
}

// FailValue makes Value fail for a cell, as an unsupported formula would.
func (s *MemorySheet) FailValue(row, col int, err error) *MemorySheet {
	s.valueErrs[cellKey{row, col}] = err
	return s
}

// FailCached makes CachedValue fail for a cell.
func (s *MemorySheet) FailCached(row, col int, err error) *MemorySheet {
	s.cachedErrs[cellKey{row, col}] = err
	return s
}

func (s *MemorySheet) Name() string { return s.name }
func (s *MemorySheet) Hidden() bool { return s.hidden }

func (s *MemorySheet) occupied() map[cellKey]bool {
	used := make(map[cellKey]bool)
	for k, v := range s.values {
		if v != "" {
			used[k] = true
		}
	}
	for k, v := range s.cached {
		if v != "" {
			used[k] = true
		}
	}
	for k := range s.valueErrs {
		used[k] = true
	}
	return used
}

func (s *MemorySheet) UsedRange() Range {
	var r Range
	for k := range s.occupied() {
		if r.FirstRow == 0 || k.row < r.FirstRow {
			r.FirstRow = k.row
		}
		r.LastRow = max(r.LastRow, k.row)
		r.LastColumn = max(r.LastColumn, k.col)
	}
	return r
}

func (s *MemorySheet) IsRowEmpty(row int) bool {
	for k := range s.occupied() {
		if k.row == row {
			return false
		}
	}
	return true
}

func (s *MemorySheet) IsColumnEmpty(col int) bool {
	for k := range s.occupied() {
		if k.col == col {
			return false
		}
	}
	return true
}

func (s *MemorySheet) Value(row, col int) (string, error) {
	k := cellKey{row, col}
	if err, ok := s.valueErrs[k]; ok {
		return "", err
	}
	return s.values[k], nil
}

func (s *MemorySheet) CachedValue(row, col int) (string, error) {
	k := cellKey{row, col}
	if err, ok := s.cachedErrs[k]; ok {
		return "", err
	}
	if v, ok := s.cached[k]; ok {
		return v, nil
	}
	return s.values[k], nil
}

// MemoryBook is an in-memory workbook for tests.
type MemoryBook struct {
	sheets []Sheet
	closed bool
}

// NewMemoryBook creates a workbook holding sheets in the given order.
func NewMemoryBook(sheets ...Sheet) *MemoryBook {
	return &MemoryBook{sheets: sheets}
}

func (b *MemoryBook) Sheets() ([]Sheet, error) {
	return append([]Sheet(nil), b.sheets...), nil
}

func (b *MemoryBook) Close() error {
	b.closed = true
	return nil
}

// Closed reports whether Close was called.
func (b *MemoryBook) Closed() bool { return b.closed }

var (
	_ Book  = (*MemoryBook)(nil)
	_ Sheet = (*MemorySheet)(nil)
)
