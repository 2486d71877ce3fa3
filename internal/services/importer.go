package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/vvka-141/sheetload/internal/db"
	"github.com/vvka-141/sheetload/internal/extract"
	"github.com/vvka-141/sheetload/internal/outcome"
	"github.com/vvka-141/sheetload/internal/source"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// WorkbookOpener opens a workbook for reading. *source.Opener implements it.
type WorkbookOpener interface {
	Open(ctx context.Context, loc source.Location) (workbook.Book, error)
}

type connectFunc func(ctx context.Context, connConfig *sheetload.ConnectionConfig) (sheetload.DBConnection, func(), error)

// ImportService implements the Importer interface.
// Thread-Safety: NOT safe for concurrent Import() calls on the same instance.
type ImportService struct {
	connectorFactory func(*sheetload.ConnectionConfig) (sheetload.Connector, error)
	opener           WorkbookOpener
	writer           sheetload.TableWriter
	logger           sheetload.Logger
	env              *db.EnvVars
	connect          connectFunc
}

var _ sheetload.Importer = (*ImportService)(nil)

// NewImportService creates an ImportService with all dependencies injected.
// Panics on nil dependencies; a nil env means no environment fallbacks.
func NewImportService(
	connectorFactory func(*sheetload.ConnectionConfig) (sheetload.Connector, error),
	opener WorkbookOpener,
	writer sheetload.TableWriter,
	logger sheetload.Logger,
	env *db.EnvVars,
) *ImportService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if opener == nil {
		panic("opener cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if env == nil {
		env = &db.EnvVars{}
	}

	svc := &ImportService{
		connectorFactory: connectorFactory,
		opener:           opener,
		writer:           writer,
		logger:           logger,
		env:              env,
	}
	svc.connect = svc.defaultConnect
	return svc
}

func (s *ImportService) defaultConnect(ctx context.Context, connConfig *sheetload.ConnectionConfig) (sheetload.DBConnection, func(), error) {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	closeConnector := func() {
		if closer, ok := connector.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				s.logger.Verbose("Failed to close connector: %v", err)
			}
		}
	}

	s.logger.Info("Connecting to %s:%d/%s (%s)", connConfig.Host, connConfig.Port, connConfig.Database, connConfig.AuthMethod)
	pool, err := connector.Connect(ctx)
	if err != nil {
		closeConnector()
		return nil, nil, fmt.Errorf("%w: %w", sheetload.ErrConnectionFailed, err)
	}

	cleanup := func() {
		pool.Close()
		closeConnector()
	}
	return db.NewPoolAdapter(pool), cleanup, nil
}

// Import parses the workbook named by cfg.Source and, unless this is a dry
// run or nothing was parsed, writes the records to the configured tables.
//
// Warnings, parse errors and failed rows are reported on the Summary and in
// the log. The error is reserved for failures that stop the run: invalid
// configuration, a missing or unreadable workbook, no worksheets to parse,
// a failed connection, a denied drop or a cancelled context.
func (s *ImportService) Import(ctx context.Context, cfg sheetload.LoadConfig) (sheetload.Summary, error) {
	summary := sheetload.Summary{RunID: cfg.RunID, DryRun: cfg.DryRun}
	if summary.RunID == "" {
		summary.RunID = uuid.NewString()
	}

	if err := cfg.Validate(); err != nil {
		return summary, err
	}

	loc, err := source.Parse(cfg.Source)
	if err != nil {
		return summary, err
	}

	parsed, err := s.parse(ctx, loc, cfg.Parse)
	if err != nil {
		return summary, err
	}
	summary.Parse = parsed
	s.reportMessages(parsed.Warnings, parsed.Errors)

	if noWorksheets(parsed) {
		s.reportSummary(summary)
		return summary, fmt.Errorf("%s: %w", loc, sheetload.ErrNoWorksheets)
	}

	switch {
	case cfg.DryRun:
		s.logger.Info("Dry run, skipping database write")
	case len(parsed.Records) == 0:
		s.logger.Info("No records to write")
	default:
		written, err := s.write(ctx, cfg.SQL, parsed.Records)
		summary.Write = written
		s.reportMessages(written.Warnings, written.Errors)
		if err != nil {
			return summary, err
		}
	}

	s.reportSummary(summary)
	return summary, nil
}

// parse opens the workbook and extracts every selected worksheet.
// The workbook stays open for the whole parse.
func (s *ImportService) parse(ctx context.Context, loc source.Location, settings sheetload.ParseSettings) (sheetload.ParseResult, error) {
	book, err := s.opener.Open(ctx, loc)
	if err != nil {
		return sheetload.ParseResult{}, err
	}
	defer func() {
		if err := book.Close(); err != nil {
			s.logger.Verbose("Failed to close workbook: %v", err)
		}
	}()

	s.logger.Info("Parsing %s", loc)
	extractor := extract.NewExtractor(settings, s.logger)

	parsed, err := outcome.Try(func() (sheetload.ParseResult, error) {
		return extractor.ExtractBook(ctx, book)
	}).Get()
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return sheetload.ParseResult{}, err
		case errors.Is(err, sheetload.ErrParseFailed):
			return sheetload.ParseResult{}, err
		default:
			return sheetload.ParseResult{}, fmt.Errorf("%w: %s: %w", sheetload.ErrParseFailed, loc, err)
		}
	}
	return parsed, nil
}

func (s *ImportService) write(ctx context.Context, settings sheetload.SQLSettings, records []sheetload.ImportRecord) (sheetload.WriteResult, error) {
	connConfig, err := db.ResolveConnection(settings, s.env)
	if err != nil {
		return sheetload.WriteResult{}, err
	}

	conn, cleanup, err := s.connect(ctx, connConfig)
	if err != nil {
		return sheetload.WriteResult{}, err
	}
	defer cleanup()

	return s.writer.Write(ctx, conn, records, settings)
}

func noWorksheets(r sheetload.ParseResult) bool {
	return len(r.Records) == 0 && slices.Equal(r.Errors, []string{sheetload.NoWorksheetsMessage})
}

func (s *ImportService) reportMessages(warnings, errs []string) {
	for _, w := range warnings {
		s.logger.Warn("%s", w)
	}
	for _, e := range errs {
		s.logger.Error("%s", e)
	}
}

func (s *ImportService) reportSummary(summary sheetload.Summary) {
	for _, t := range summary.Write.Tables {
		s.logger.Info("%s.%s: %d inserted, %d failed", t.Schema, t.Table, t.Inserted, t.Failed)
	}
	s.logger.Info("%d Warnings", len(summary.Parse.Warnings)+len(summary.Write.Warnings))
	s.logger.Info("%d Errors", len(summary.Parse.Errors)+len(summary.Write.Errors))
	s.logger.Info("%d Total Records", len(summary.Parse.Records))
}
