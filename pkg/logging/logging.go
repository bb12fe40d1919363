// Package logging configures the process-wide zerolog logger and hands out
// per-component loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLogFileName is used when no log file path is configured.
const DefaultLogFileName = "matrix.log"

// levels maps -v counts to zerolog levels; anything above the table is trace.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
}

func levelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity < len(levels) {
		return levels[verbosity]
	}
	return zerolog.TraceLevel
}

// SetupLogger sets the global level from verbosity and sends events to
// stderr plus logFile (DefaultLogFilePath when empty). A log file that cannot
// be opened is reported once and otherwise ignored.
func SetupLogger(verbosity int, logFile string) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	if logFile == "" {
		logFile = DefaultLogFilePath()
	}

	sinks := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}}
	file, fileErr := openLogFile(logFile)
	if fileErr == nil {
		sinks = append(sinks, file)
	}

	ctx := zerolog.New(io.MultiWriter(sinks...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Log file unavailable, logging to stderr only")
	}
	log.Debug().Int("verbosity", verbosity).Str("log_file", logFile).Msg("Logger ready")
}

// GetLogger returns the global logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// DefaultLogFilePath is $XDG_STATE_HOME/matrix/matrix.log, with
// ~/.local/state standing in for an unset XDG_STATE_HOME.
func DefaultLogFilePath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultLogFileName
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "matrix", DefaultLogFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// LogCommand records a subprocess invocation at debug level.
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().Str("command", cmd).Strs("args", args).Msg("Running command")
}

// LogOperationStart logs the start of operation and returns a func that
// logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
