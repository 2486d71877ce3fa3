package extract

import (
	"fmt"
	"strings"

	"github.com/vvka-141/sheetload/internal/outcome"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// cellValue is a recovered cell with at most one diagnostic.
type cellValue struct {
	value   *string
	warning string
	err     string
}

// recoverValue reads the displayed value of a cell and falls back to the
// value cached in the file when computing it fails. rowPosition is the data
// row counter used in messages.
func (e *Extractor) recoverValue(sheet workbook.Sheet, row, col, rowPosition int) cellValue {
	var cv cellValue

	primary := outcome.Try(func() (string, error) { return sheet.Value(row, col) })
	if primary.Ok() {
		cv.value = e.trim(primary.Value())
		return cv
	}

	e.logger.Verbose("Sheet %q row %d column %d: %v", sheet.Name(), row, col, primary.Err())

	cached := outcome.Try(func() (string, error) { return sheet.CachedValue(row, col) })
	if cached.Ok() {
		cv.value = e.trim(cached.Value())
		cv.warning = fmt.Sprintf("Get value for row %d cell %d failed so the cached value was used", rowPosition, col)
		return cv
	}

	errValue := sheetload.ErrorValue
	cv.value = &errValue
	cv.err = fmt.Sprintf("Error getting value for row %d cell %d: %v", rowPosition, col, cached.Err())
	return cv
}

func (e *Extractor) trim(v string) *string {
	if e.settings.TrimWhiteSpaceFromValues {
		v = strings.TrimSpace(v)
	}
	return &v
}

// headerText reads a header cell, preferring the displayed value.
// A header that cannot be read at all is treated as empty.
func headerText(sheet workbook.Sheet, row, col int) string {
	if res := outcome.Try(func() (string, error) { return sheet.Value(row, col) }); res.Ok() {
		return res.Value()
	}
	if res := outcome.Try(func() (string, error) { return sheet.CachedValue(row, col) }); res.Ok() {
		return res.Value()
	}
	return ""
}
