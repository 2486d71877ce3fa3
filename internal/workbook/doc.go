// Package workbook provides read access to spreadsheet worksheets.
//
// Key interfaces:
//   - Book: an open workbook listing its worksheets in native order
//   - Sheet: one worksheet with its used range and two ways of reading a cell
//
// Implementations:
//   - ExcelBook: .xlsx/.xlsm workbooks read through excelize
//   - MemoryBook: in-memory worksheets for tests
//
// A Sheet exposes a displayed value (number formats applied, formulas
// computed) and a cached value (the last result stored in the file). Callers
// fall back from the first to the second when computation fails.
package workbook
