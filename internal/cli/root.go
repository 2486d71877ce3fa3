package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sheetload [workbook]",
	Short: "Load Excel worksheets into PostgreSQL tables",
	Long: `sheetload reads an Excel workbook and loads its worksheets into PostgreSQL.

Every worksheet header becomes a text column, every non-blank row becomes a
record, and records are inserted one statement at a time so that a bad row
never stops the rest of the load. Warnings and errors are reported in the log
and summarized at the end of the run.

The workbook is a local path or an s3://bucket/key URL. Without an argument
sheetload asks for one.

Settings are read from sheetload.yaml (or --config) and .env; flags override
the file.

Exit Codes:
  0  - Success (warnings and failed rows are reported in the log)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - User denied table drop
  13 - Workbook could not be parsed
  14 - Workbook not found`,
	Example: `  sheetload Import.xlsx --table 'Import_{WorksheetName}'
  sheetload s3://reports/2024/q1.xlsx --connection postgresql://loader@db/imports --table q1
  sheetload Import.xlsx --drop-table --force
  sheetload inspect Import.xlsx`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeWorkbooks,
	SilenceUsage:      true,
	RunE:              runLoad,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for sheetload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	registerCommonFlags(rootCmd)
	registerLoadFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
