package sheetload

import "context"

// Importer runs a complete workbook import: parse, then write.
type Importer interface {
	// Import parses cfg.Source and loads the records into the configured tables.
	// Partial failures are reported in the Summary, not as an error.
	Import(ctx context.Context, cfg LoadConfig) (Summary, error)
}

// TableWriter writes parsed records into destination tables.
//
// Record-level and table-level failures are collected on the WriteResult.
// The error is reserved for conditions that stop the whole write: a refused
// drop approval or a cancelled context.
type TableWriter interface {
	Write(ctx context.Context, conn DBConnection, records []ImportRecord, settings SQLSettings) (WriteResult, error)
}
