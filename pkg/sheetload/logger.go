package sheetload

// Logger provides a pluggable logging interface for sheetload operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...any)

	// Info logs informational messages about normal operations.
	Info(format string, args ...any)

	// Warn logs recoverable problems found in the input.
	Warn(format string, args ...any)

	// Error logs error messages.
	Error(format string, args ...any)
}
