package extract

import (
	"fmt"

	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Extractor converts worksheets into records under one set of ParseSettings.
// It holds no state between sheets and is safe to reuse.
type Extractor struct {
	settings sheetload.ParseSettings
	fields   *FieldResolver
	logger   sheetload.Logger
}

// NewExtractor creates an Extractor. Panics if logger is nil.
func NewExtractor(settings sheetload.ParseSettings, logger sheetload.Logger) *Extractor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Extractor{
		settings: settings,
		fields:   NewFieldResolver(settings, logger),
		logger:   logger,
	}
}

// startRow is the header row, or the first data row when there is no header.
func (e *Extractor) startRow(used workbook.Range) int {
	row := 1
	if e.settings.SkipBlankRows {
		row = used.FirstRow
	}
	if e.settings.StartAtRow > 1 {
		row += e.settings.StartAtRow - 1
	}
	return row
}

// Fields resolves the header row of a worksheet.
func (e *Extractor) Fields(sheet workbook.Sheet) ([]sheetload.Field, []string) {
	used := sheet.UsedRange()
	if used.Empty() {
		return nil, nil
	}
	headerRow := e.startRow(used)

	var (
		fields   []sheetload.Field
		warnings []string
		taken    = make(keySet)
	)
	if e.settings.AllWorksheets {
		taken.reserve(sheetload.WorksheetNameKey)
	}
	for col := 1; col <= used.LastColumn; col++ {
		if e.settings.SkipBlankColumns && sheet.IsColumnEmpty(col) {
			continue
		}

		var header string
		if e.settings.FirstRowIsHeader {
			header = headerText(sheet, headerRow, col)
		}

		field, warning := e.fields.Resolve(header, col)
		if warning != "" {
			warnings = append(warnings, warning)
		}

		if key := e.fields.Unique(field.Key, taken); key != field.Key {
			warnings = append(warnings, fmt.Sprintf("Column name in position %d duplicates %q, using %q", col, field.Key, key))
			field.Key = key
		}

		fields = append(fields, field)
	}
	return fields, warnings
}

// ExtractSheet parses one worksheet.
func (e *Extractor) ExtractSheet(sheet workbook.Sheet) sheetload.ParseResult {
	e.logger.Verbose("Parsing worksheet %q", sheet.Name())

	fields, warnings := e.Fields(sheet)
	result := sheetload.ParseResult{Warnings: warnings}
	if len(fields) == 0 {
		e.logger.Verbose("Worksheet %q has no columns", sheet.Name())
		return result
	}

	used := sheet.UsedRange()
	first := e.startRow(used)
	if e.settings.FirstRowIsHeader {
		first++
	}

	position := 0
	for row := first; row <= used.LastRow; row++ {
		position++

		if sheet.IsRowEmpty(row) {
			if !e.settings.SkipBlankRows {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d is empty", row))
			}
			continue
		}

		record := sheetload.ImportRecord{
			WorksheetName: sheet.Name(),
			RowPosition:   position,
			Values:        make([]sheetload.RecordValue, 0, len(fields)),
		}
		for _, f := range fields {
			cv := e.recoverValue(sheet, row, f.ColumnPosition, position)
			if cv.warning != "" {
				result.Warnings = append(result.Warnings, cv.warning)
			}
			if cv.err != "" {
				result.Errors = append(result.Errors, cv.err)
			}
			record.Values = append(record.Values, sheetload.RecordValue{FieldKey: f.Key, Value: cv.value})
		}
		result.Records = append(result.Records, record)
	}

	e.logger.Verbose("Worksheet %q: %d fields, %d records", sheet.Name(), len(fields), len(result.Records))
	return result
}
