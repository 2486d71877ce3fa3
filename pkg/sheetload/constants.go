package sheetload

import "time"

// Exit codes for semantic error classification.
//   - 0: Success (including runs that finished with warnings or row errors)
//   - 1: General error
//   - 2: CLI usage error
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Import completed, warnings and row errors are reported in the log
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied table drop
	ExitParseFailed     = 13 // Workbook could not be parsed
	ExitInputNotFound   = 14 // Workbook file does not exist
)

const (
	// DefaultSchemaName is the destination schema when none is configured.
	DefaultSchemaName = "dbo"

	// WorksheetNamePlaceholder in a table name yields one table per worksheet.
	WorksheetNamePlaceholder = "{WorksheetName}"

	// WorksheetNameKey is the field key of the synthetic worksheet value
	// prepended to every record in multi-sheet mode.
	WorksheetNameKey = "WorksheetName"

	// NoWorksheetsMessage is the single parse error reported when filtering leaves nothing to parse.
	NoWorksheetsMessage = "No worksheets found"

	// ErrorValue replaces a cell whose value could not be recovered.
	ErrorValue = "-Error-"

	// DefaultFieldNameCharacterLimit bounds the length of a field key.
	DefaultFieldNameCharacterLimit = 128

	// MaxIdentifierBytes is PostgreSQL's NAMEDATALEN-1; longer identifiers are truncated by the server.
	MaxIdentifierBytes = 63

	// DefaultConfigFileName is looked up in the working directory.
	DefaultConfigFileName = "sheetload.yaml"

	// DefaultTimeout bounds a whole import run.
	DefaultTimeout = 30 * time.Minute

	// DefaultDropApprovalCountdown is the countdown before a forced drop proceeds.
	DefaultDropApprovalCountdown = 3 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// MaxErrorPreviewLength caps values echoed back in error messages.
	MaxErrorPreviewLength = 200
)
