// Package extract turns worksheets into import records.
//
// The Extractor walks a workbook sheet by sheet. For each sheet it resolves
// the header row into fields, then walks the data rows down to the last used
// row, recovering each cell's value with a cached-value fallback. Problems in
// the input never abort the walk: they become warnings and errors on the
// returned ParseResult, which callers merge sheet by sheet.
package extract
