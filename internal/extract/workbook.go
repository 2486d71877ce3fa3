package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// SelectSheets applies visibility, exclusion and inclusion filters.
// Sheet names are compared case-insensitively.
func (e *Extractor) SelectSheets(sheets []workbook.Sheet) []workbook.Sheet {
	exclude := lowerSet(e.settings.ExcludeSheets)
	include := lowerSet(e.settings.LimitToOnlySheets)

	var selected []workbook.Sheet
	for _, s := range sheets {
		name := strings.ToLower(s.Name())
		switch {
		case e.settings.SkipHiddenWorksheets && s.Hidden():
			e.logger.Verbose("Skipping hidden worksheet %q", s.Name())
		case exclude[name]:
			e.logger.Verbose("Skipping excluded worksheet %q", s.Name())
		case len(include) > 0 && !include[name]:
			e.logger.Verbose("Skipping worksheet %q, not in LimitToOnlySheets", s.Name())
		default:
			selected = append(selected, s)
		}
	}
	return selected
}

// ExtractBook parses every selected worksheet in workbook order.
// The error is reserved for failures reading the workbook itself or a
// cancelled context; input problems are reported on the result.
func (e *Extractor) ExtractBook(ctx context.Context, book workbook.Book) (sheetload.ParseResult, error) {
	sheets, err := book.Sheets()
	if err != nil {
		return sheetload.ParseResult{}, fmt.Errorf("%w: %w", sheetload.ErrParseFailed, err)
	}

	selected := e.SelectSheets(sheets)
	if len(selected) == 0 {
		return sheetload.Failed(sheetload.NoWorksheetsMessage), nil
	}

	var result sheetload.ParseResult
	for _, sheet := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sheetResult := e.ExtractSheet(sheet)
		if e.settings.AllWorksheets {
			sheetResult = tagWorksheet(sheetResult, sheet.Name()).
				WithMessagePrefix(fmt.Sprintf("Worksheet '%s': ", sheet.Name()))
		}
		result = result.Merge(sheetResult)
	}
	return result, nil
}

// tagWorksheet returns a copy of r whose records start with a WorksheetName value.
func tagWorksheet(r sheetload.ParseResult, name string) sheetload.ParseResult {
	tagged := make([]sheetload.ImportRecord, len(r.Records))
	for i, rec := range r.Records {
		sheetName := name
		values := make([]sheetload.RecordValue, 0, len(rec.Values)+1)
		values = append(values, sheetload.RecordValue{FieldKey: sheetload.WorksheetNameKey, Value: &sheetName})
		values = append(values, rec.Values...)
		rec.Values = values
		tagged[i] = rec
	}
	return sheetload.ParseResult{Records: tagged, Warnings: r.Warnings, Errors: r.Errors}
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return set
}
