// internal/logging/logging.go
// Package logging holds the process-wide structured logger used by the CLI.
// Engine packages under core/ never log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable consulted when no level flag is set.
const EnvLevel = "PRIMERSCORE_LOG_LEVEL"

// Logger is the global logger instance.
var Logger = newLogger(os.Stderr, log.InfoLevel)

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(lvl)
	return l
}

// Configure rebuilds Logger. Level precedence: level argument, then
// PRIMERSCORE_LOG_LEVEL, then info. A non-empty file is opened for append and
// takes precedence over w; the returned closer releases it.
func Configure(level, file string, w io.Writer) (io.Closer, error) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	Logger = newLogger(w, lvl)
	return closer, nil
}

// ParseLevel maps debug|info|warn|error to a level; empty means info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q (debug|info|warn|error)", s)
	}
}

// Warnf reports a recoverable input problem unless quiet is set.
func Warnf(quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	Logger.Warn(fmt.Sprintf(format, a...))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
