// Package logging provides concrete implementations of the sheetload.Logger interface.
//
// Available implementations:
//   - ZapLogger: zap-backed logger writing to the console and optionally a JSON log file
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
