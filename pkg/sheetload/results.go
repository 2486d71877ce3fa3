package sheetload

import "slices"

// ParseResult is the outcome of parsing one worksheet or a whole workbook.
// Results are values: combining them never mutates the inputs.
type ParseResult struct {
	Records  []ImportRecord
	Warnings []string
	Errors   []string
}

// Failed returns a result carrying a single error and no records.
func Failed(msg string) ParseResult {
	return ParseResult{Errors: []string{msg}}
}

// Merge returns a new result with other's entries appended after r's.
func (r ParseResult) Merge(other ParseResult) ParseResult {
	return ParseResult{
		Records:  append(slices.Clip(r.Records), other.Records...),
		Warnings: append(slices.Clip(r.Warnings), other.Warnings...),
		Errors:   append(slices.Clip(r.Errors), other.Errors...),
	}
}

// WithMessagePrefix returns a copy whose warnings and errors start with prefix.
func (r ParseResult) WithMessagePrefix(prefix string) ParseResult {
	out := ParseResult{Records: r.Records}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, prefix+w)
	}
	for _, e := range r.Errors {
		out.Errors = append(out.Errors, prefix+e)
	}
	return out
}

// TableResult reports what happened to one destination table.
type TableResult struct {
	Schema   string
	Table    string
	Columns  []string
	Dropped  bool
	Inserted int
	Failed   int
}

// WriteResult is the outcome of writing records to the database.
type WriteResult struct {
	Tables   []TableResult
	Warnings []string
	Errors   []string
}

// Inserted returns the number of rows inserted across all tables.
func (w WriteResult) Inserted() int {
	n := 0
	for _, t := range w.Tables {
		n += t.Inserted
	}
	return n
}

// Failed returns the number of rows that could not be inserted.
func (w WriteResult) Failed() int {
	n := 0
	for _, t := range w.Tables {
		n += t.Failed
	}
	return n
}

// Summary is reported at the end of an import run.
type Summary struct {
	RunID  string
	Parse  ParseResult
	Write  WriteResult
	DryRun bool
}
