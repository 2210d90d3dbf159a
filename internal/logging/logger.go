// Package logging provides the leveled run logger: a colored console sink
// on stdout/stderr and an optional rotating JSON file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/backmassage/romsweep/internal/config"
	"github.com/backmassage/romsweep/internal/term"
)

// Log file rotation limits.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	zl   zerolog.Logger
	file io.Closer
}

// NewLogger builds the logger described by cfg. Call Close() when done if
// LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := term.Configure(cfg.ColorMode)
	console := splitWriter{
		out: consoleWriter(colorable.NewColorableStdout(), color),
		err: consoleWriter(colorable.NewColorableStderr(), color),
	}

	var file *lumberjack.Logger
	var w io.Writer = console
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
		}
		w = zerolog.MultiLevelWriter(console, file)
	}

	l := New(w, levelFor(cfg))
	if file != nil {
		l.file = file
	}
	return l, nil
}

// New returns a Logger writing to w at level. Used by tests and by callers
// that bring their own sink.
func New(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func levelFor(cfg *config.Config) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func consoleWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: time.DateTime,
	}
}

// splitWriter sends errors to stderr and everything else to stdout.
type splitWriter struct {
	out, err io.Writer
}

func (s splitWriter) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s splitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel {
		return s.err.Write(p)
	}
	return s.out.Write(p)
}

// With returns a child logger tagging every line with key=value. The child
// shares the sinks; only the root logger should be closed.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs at INFO level, marked as a successful outcome.
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.Info().Bool("ok", true).Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, to stderr on the console.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the logger runs verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}
