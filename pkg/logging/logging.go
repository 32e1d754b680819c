// Package logging sets up savelink's zerolog output: a console writer on
// stderr and an append-only log file in the state directory, which is what
// users attach when a link or restore went wrong.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxLogSize is the size past which the log file is rotated on startup.
// Only one previous file (savelink.log.1) is kept.
const MaxLogSize int64 = 1 << 20

// Options controls where log output goes
type Options struct {
	Verbosity int
	// Console defaults to os.Stderr
	Console io.Writer
	// LogFile defaults to paths.LogFilePath(). "-" turns the file off.
	LogFile string
}

// SetupLogger configures the global logger for the given -v count
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger. Failing to open the log file is not
// fatal: logging continues on the console and the failure is reported there.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = paths.LogFilePath()
	}

	var fileErr error
	if logFile != "-" {
		var f *os.File
		if f, fileErr = openLogFile(logFile); fileErr == nil {
			writers = append(writers, f)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// Level maps the -v count to a zerolog level: warnings by default, then
// info, debug and trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a logger tagged with the component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// WithOperation tags logger with the operation (migrate, link, restore) so
// every line of one run can be grepped out of the log file
func WithOperation(logger zerolog.Logger, operation string) zerolog.Logger {
	return logger.With().Str("operation", operation).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := rotate(logPath); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// rotate moves an oversized log aside, replacing any older rotation
func rotate(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() < MaxLogSize {
		return nil
	}
	if err := os.Rename(logPath, logPath+".1"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}
