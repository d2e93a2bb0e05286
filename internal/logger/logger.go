// Package logger owns the process-wide charmbracelet logger. Output goes to
// a size-rotated file under the configured log directory; debug runs also
// mirror to stderr unless the caller owns the terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dayrail/internal/constants"
)

// Output formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger is nil until Init succeeds; the package helpers are no-ops before then.
var Logger *log.Logger

var file string

// Options controls where and how the ledger log is written.
type Options struct {
	Debug  bool
	LogDir string
	Format string
	// Quiet suppresses the stderr mirror; the TUI sets it.
	Quiet bool
}

func (o Options) formatter() (log.Formatter, error) {
	switch o.Format {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("logger: unknown format %q", o.Format)
	}
}

// Init replaces Logger with one built from opts.
func Init(opts Options) error {
	formatter, err := opts.formatter()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	path := filepath.Join(opts.LogDir, constants.AppName+".log")
	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	if opts.Debug && !opts.Quiet {
		out = io.MultiWriter(os.Stderr, out)
	}

	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    opts.Debug,
	})
	file = path
	return nil
}

// File is the active log file, or "" before Init.
func File() string {
	return file
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
