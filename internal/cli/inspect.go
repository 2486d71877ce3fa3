package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sheetload/internal/extract"
	"github.com/vvka-141/sheetload/internal/outcome"
	"github.com/vvka-141/sheetload/internal/source"
	"github.com/vvka-141/sheetload/internal/tui"
	"github.com/vvka-141/sheetload/internal/workbook"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <workbook>",
	Short: "Show the fields and records sheetload would load",
	Long: `Inspect parses a workbook with the configured ParserSettings and prints,
per worksheet, the resolved field keys and the number of records, warnings
and errors. The database is never contacted.

Examples:
  sheetload inspect Import.xlsx
  sheetload inspect Import.xlsx --sheet Orders --verbose`,
	Args:              RequireWorkbookPath,
	ValidArgsFunction: completeWorkbooks,
	RunE:              runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if settings.StayOpen {
		defer pause(cmd)
	}
	if err := settings.ParserSettings.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(settings.Logging, verbose, "", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	loc, err := source.Parse(args[0])
	if err != nil {
		return err
	}

	ctx, stop := withInterrupt(commandContext(cmd))
	defer stop()

	book, err := source.NewOpener(logger).Open(ctx, loc)
	if err != nil {
		return err
	}
	defer book.Close()

	return inspectBook(ctx, cmd.OutOrStdout(), book, extract.NewExtractor(settings.ParserSettings, logger))
}

// inspectBook prints one section per selected worksheet and a total line.
func inspectBook(ctx context.Context, w io.Writer, book workbook.Book, extractor *extract.Extractor) error {
	sheets, err := book.Sheets()
	if err != nil {
		return fmt.Errorf("%w: %w", sheetload.ErrParseFailed, err)
	}

	selected := extractor.SelectSheets(sheets)
	if len(selected) == 0 {
		return fmt.Errorf("nothing to inspect: %w", sheetload.ErrNoWorksheets)
	}

	var total sheetload.ParseResult
	for _, sheet := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(w, tui.TitleStyle.Render(fmt.Sprintf("Worksheet %q", sheet.Name())))

		fields, _ := extractor.Fields(sheet)
		for _, f := range fields {
			fmt.Fprintf(w, "  %4d  %-32s -> %s\n", f.ColumnPosition, f.Name, f.Key)
		}

		result, err := outcome.Try(func() (sheetload.ParseResult, error) {
			return extractor.ExtractSheet(sheet), nil
		}).Get()
		if err != nil {
			fmt.Fprintf(w, "  %s %v\n\n", tui.SymbolCross, err)
			total = total.Merge(sheetload.Failed(err.Error()))
			continue
		}

		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s %s\n", tui.SymbolCross, e)
		}
		fmt.Fprintf(w, "  %d records, %d warnings, %d errors\n\n", len(result.Records), len(result.Warnings), len(result.Errors))
		total = total.Merge(result)
	}

	fmt.Fprintf(w, "%d Worksheets, %d Total Records, %d Warnings, %d Errors\n",
		len(selected), len(total.Records), len(total.Warnings), len(total.Errors))
	return nil
}
