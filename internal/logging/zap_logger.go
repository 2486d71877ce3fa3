package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Options configures a ZapLogger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Format is text or json and applies to the console output only.
	Format string

	// File, when set, receives every entry as JSON in addition to the console.
	File string

	// Verbose lowers the level to debug regardless of Level.
	Verbose bool

	// RunID is attached to every entry.
	RunID string

	// Console defaults to os.Stderr.
	Console io.Writer
}

// ZapLogger adapts a zap logger to sheetload.Logger.
type ZapLogger struct {
	log  *zap.SugaredLogger
	file *os.File
}

// NewZapLogger builds a logger teeing console output and the optional log file.
func NewZapLogger(opts Options) (*ZapLogger, error) {
	level, err := parseLevel(opts)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleEncoder, err := newConsoleEncoder(opts.Format)
	if err != nil {
		return nil, err
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(console)), level),
	}

	var file *os.File
	if opts.File != "" {
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.Lock(file),
			level,
		))
	}

	log := zap.New(zapcore.NewTee(cores...))
	if opts.RunID != "" {
		log = log.With(zap.String("run_id", opts.RunID))
	}

	return &ZapLogger{log: log.Sugar(), file: file}, nil
}

func parseLevel(opts Options) (zap.AtomicLevel, error) {
	if opts.Verbose {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}
	if strings.TrimSpace(opts.Level) == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", opts.Level, sheetload.ErrInvalidConfig)
	}
	return zap.NewAtomicLevelAt(lvl), nil
}

func newConsoleEncoder(format string) (zapcore.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.NameKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case "json":
		return zapcore.NewJSONEncoder(fileEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: %w", format, sheetload.ErrInvalidConfig)
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// Verbose logs at debug level.
func (l *ZapLogger) Verbose(format string, args ...any) { l.log.Debugf(format, args...) }

// Info logs at info level.
func (l *ZapLogger) Info(format string, args ...any) { l.log.Infof(format, args...) }

// Warn logs at warn level.
func (l *ZapLogger) Warn(format string, args ...any) { l.log.Warnf(format, args...) }

// Error logs at error level.
func (l *ZapLogger) Error(format string, args ...any) { l.log.Errorf(format, args...) }

// Close flushes buffered entries and closes the log file, if any.
func (l *ZapLogger) Close() error {
	_ = l.log.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

var _ sheetload.Logger = (*ZapLogger)(nil)
