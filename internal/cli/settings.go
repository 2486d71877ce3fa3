package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sheetload/internal/config"
	"github.com/vvka-141/sheetload/internal/db"
	"github.com/vvka-141/sheetload/internal/logging"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// commonFlagValues holds the flags shared by every command that reads a workbook.
type commonFlagValues struct {
	configPath    string
	sheets        []string
	excludeSheets []string
	timeout       time.Duration
	stayOpen      bool
	logLevel      string
	logFormat     string
	logFile       string
}

// loadFlagValues holds the destination flags of the load command.
type loadFlagValues struct {
	connection string
	table      string
	schema     string
	dropTable  bool
	force      bool
	dryRun     bool
}

var (
	commonFlags commonFlagValues
	loadFlags   loadFlagValues
)

func registerCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&commonFlags.configPath, "config", "",
		"Configuration file (default: ./"+sheetload.DefaultConfigFileName+" when present)")
	flags.StringSliceVar(&commonFlags.sheets, "sheet", nil,
		"Only load these worksheets (repeatable, case-insensitive)\n"+
			"Overrides ParserSettings.LimitToOnlySheets")
	flags.StringSliceVar(&commonFlags.excludeSheets, "exclude-sheet", nil,
		"Skip these worksheets (repeatable, case-insensitive)\n"+
			"Overrides ParserSettings.ExcludeSheets")
	flags.DurationVar(&commonFlags.timeout, "timeout", sheetload.DefaultTimeout,
		"Abort the whole run after this long\n"+
			"Examples: 30s, 5m, 1h30m")
	flags.BoolVar(&commonFlags.stayOpen, "stay-open", false,
		"Wait for a key press before exiting")
	flags.StringVar(&commonFlags.logLevel, "log-level", "",
		"Log level: debug|info|warn|error (default: info)")
	flags.StringVar(&commonFlags.logFormat, "log-format", "",
		"Console log format: text|json (default: text)")
	flags.StringVar(&commonFlags.logFile, "log-file", "",
		"Also write every log entry as JSON to this file")

	_ = cmd.RegisterFlagCompletionFunc("log-level", completeValues(logLevels))
	_ = cmd.RegisterFlagCompletionFunc("log-format", completeValues(logFormats))
}

func registerLoadFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&loadFlags.connection, "connection", "",
		"PostgreSQL connection string (URI or ADO.NET format)\n"+
			"Precedence: --connection > SqlSettings.ConnectionString > $SHEETLOAD_CONNECTION_STRING > $DATABASE_URL\n"+
			"Example: postgresql://user@localhost:5432/imports")
	flags.StringVar(&loadFlags.table, "table", "",
		"Destination table; "+sheetload.WorksheetNamePlaceholder+" creates one table per worksheet")
	flags.StringVar(&loadFlags.schema, "schema", "",
		"Destination schema (default: "+sheetload.DefaultSchemaName+")")
	flags.BoolVar(&loadFlags.dropTable, "drop-table", false,
		"Drop existing destination tables before loading\n"+
			"Asks for confirmation unless --force is used")
	flags.BoolVar(&loadFlags.force, "force", false,
		"Skip the confirmation prompt before dropping tables\n"+
			"Requires --drop-table")
	flags.BoolVar(&loadFlags.dryRun, "dry-run", false,
		"Parse the workbook and report the results without touching the database")
}

// loadSettings loads .env and the configuration file, then applies the
// flags the user set explicitly.
func loadSettings(cmd *cobra.Command) (*config.FileConfig, error) {
	if err := config.LoadDotEnv(""); err != nil {
		return nil, fmt.Errorf("%w: %w", sheetload.ErrInvalidConfig, err)
	}

	var (
		settings *config.FileConfig
		err      error
	)
	if commonFlags.configPath != "" {
		settings, err = config.Load(commonFlags.configPath)
	} else {
		settings, err = config.LoadOrDefault("")
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %w", sheetload.ErrInvalidConfig, err)
		}
		return nil, err
	}

	applyFlagOverrides(cmd, settings)
	return settings, nil
}

func applyFlagOverrides(cmd *cobra.Command, settings *config.FileConfig) {
	flags := cmd.Flags()

	if flags.Changed("sheet") {
		settings.ParserSettings.LimitToOnlySheets = commonFlags.sheets
	}
	if flags.Changed("exclude-sheet") {
		settings.ParserSettings.ExcludeSheets = commonFlags.excludeSheets
	}
	if flags.Changed("timeout") {
		settings.Timeout = commonFlags.timeout.String()
	}
	if flags.Changed("stay-open") {
		settings.StayOpen = commonFlags.stayOpen
	}
	if flags.Changed("log-level") {
		settings.Logging.Level = commonFlags.logLevel
	}
	if flags.Changed("log-format") {
		settings.Logging.Format = commonFlags.logFormat
	}
	if flags.Changed("log-file") {
		settings.Logging.File = commonFlags.logFile
	}

	if flags.Changed("table") {
		settings.SqlSettings.TableName = loadFlags.table
	}
	if flags.Changed("schema") {
		settings.SqlSettings.SchemaName = loadFlags.schema
	}
	if flags.Changed("drop-table") {
		settings.SqlSettings.DropTable = loadFlags.dropTable
	}
	if flags.Changed("force") {
		settings.SqlSettings.Force = loadFlags.force
	}
}

// buildLoadConfig assembles the LoadConfig for one run.
func buildLoadConfig(settings *config.FileConfig, workbook, runID string, env *db.EnvVars, verbose bool) (sheetload.LoadConfig, error) {
	timeout, err := settings.TimeoutDuration()
	if err != nil {
		return sheetload.LoadConfig{}, err
	}

	sql := settings.SqlSettings
	sql.ConnectionString = db.SelectConnectionString(loadFlags.connection, sql.ConnectionString, env)

	return sheetload.LoadConfig{
		Source:  workbook,
		RunID:   runID,
		Parse:   settings.ParserSettings,
		SQL:     sql,
		DryRun:  loadFlags.dryRun,
		Timeout: timeout,
		Verbose: verbose,
	}, nil
}

func newLogger(cfg config.LoggingConfig, verbose bool, runID string, console io.Writer) (*logging.ZapLogger, error) {
	return logging.NewZapLogger(logging.Options{
		Level:   cfg.Level,
		Format:  cfg.Format,
		File:    cfg.File,
		Verbose: verbose,
		RunID:   runID,
		Console: console,
	})
}
