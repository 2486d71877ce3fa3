package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/sheetload/internal/outcome"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Loader implements sheetload.TableWriter.
type Loader struct {
	approver sheetload.Approver
	logger   sheetload.Logger
}

// NewLoader creates a Loader. Panics if approver or logger is nil.
func NewLoader(approver sheetload.Approver, logger sheetload.Logger) *Loader {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{approver: approver, logger: logger}
}

// Write creates one table per record group and inserts every record.
func (l *Loader) Write(ctx context.Context, conn sheetload.DBConnection, records []sheetload.ImportRecord, settings sheetload.SQLSettings) (sheetload.WriteResult, error) {
	var result sheetload.WriteResult

	groups := GroupRecords(records, settings.TableName)
	if len(groups) == 0 {
		l.logger.Info("No records to write")
		return result, nil
	}

	schema := strings.TrimSpace(settings.SchemaName)
	if schema == "" {
		schema = sheetload.DefaultSchemaName
	}

	schemaSQL := Table{Schema: schema}.CreateSchemaSQL()
	if err := l.exec(ctx, conn, schemaSQL); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to create schema %q: %v", schema, err))
		return result, nil
	}

	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if g.Table == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Table name is empty for %d records", len(g.Records)))
			continue
		}

		table, warnings := NewTable(schema, g.Table, Keys(g.Records))
		result.Warnings = append(result.Warnings, warnings...)

		tr, err := l.writeTable(ctx, conn, table, g.Records, settings.DropTable, &result)
		result.Tables = append(result.Tables, tr)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

// writeTable prepares one table and inserts its records. Table-level
// failures are appended to result; the error stops the whole write.
func (l *Loader) writeTable(ctx context.Context, conn sheetload.DBConnection, table Table, records []sheetload.ImportRecord, drop bool, result *sheetload.WriteResult) (sheetload.TableResult, error) {
	tr := sheetload.TableResult{
		Schema:  table.Schema,
		Table:   table.Name,
		Columns: table.Columns,
	}
	name := table.QualifiedName()

	if drop {
		dropped, err := l.dropTable(ctx, conn, table)
		if err != nil {
			if errors.Is(err, sheetload.ErrApprovalDenied) || ctx.Err() != nil {
				return tr, err
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to drop table %s: %v", name, err))
			tr.Failed = len(records)
			return tr, nil
		}
		tr.Dropped = dropped
	}

	if err := l.exec(ctx, conn, table.CreateSQL()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return tr, ctxErr
		}
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to create table %s: %v", name, err))
		tr.Failed = len(records)
		return tr, nil
	}
	l.logger.Info("Created table %s with %d columns", name, len(table.Columns))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return tr, err
		}

		sql, args := table.InsertSQL(rec)
		res := outcome.Run(func() error { return l.exec(ctx, conn, sql, args...) })
		if res.Ok() {
			tr.Inserted++
			continue
		}
		tr.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("Table %s: worksheet '%s' row %d was not inserted: %v",
			name, rec.WorksheetName, rec.RowPosition, res.Err()))
	}

	l.logger.Info("Table %s: %d inserted, %d failed", name, tr.Inserted, tr.Failed)
	return tr, nil
}

// dropTable drops an existing table once the approver allows it.
// It reports whether a table was dropped.
func (l *Loader) dropTable(ctx context.Context, conn sheetload.DBConnection, table Table) (bool, error) {
	name := table.QualifiedName()

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check whether %s exists: %w", name, err)
	}
	if !exists {
		l.logger.Verbose("Table %s does not exist, nothing to drop", name)
		return false, nil
	}

	approved, err := l.approver.RequestApproval(ctx, table.DisplayName())
	if err != nil {
		return false, fmt.Errorf("approval for dropping %s failed: %w", name, err)
	}
	if !approved {
		return false, fmt.Errorf("drop of table %s was not approved: %w", name, sheetload.ErrApprovalDenied)
	}

	if err := l.exec(ctx, conn, table.DropSQL()); err != nil {
		return false, err
	}
	l.logger.Info("Dropped table %s", name)
	return true, nil
}

func (l *Loader) exec(ctx context.Context, conn sheetload.DBConnection, sql string, args ...any) error {
	l.logger.Verbose("Executing %s %v", sql, args)
	_, err := conn.Exec(ctx, sql, args...)
	return err
}

var _ sheetload.TableWriter = (*Loader)(nil)
