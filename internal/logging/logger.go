// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the structured logger used across the CLI and
// interpreters, and utilities for keeping credentials out of log lines.
//
// Log lines go through pterm's logger. Every string argument is passed
// through Mask first, so endpoint URLs with userinfo or queries carrying a
// password literal are scrubbed before they are written.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Logger writes leveled, key/value log lines.
type Logger struct {
	l *pterm.Logger
}

// New creates a Logger writing to w. level is one of trace, debug, info,
// warn, error or disabled; format is text or json.
func New(level, format string, w io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	l := pterm.DefaultLogger.WithLevel(lvl).WithWriter(w)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		l = l.WithFormatter(pterm.LogFormatterColorful)
	case "json":
		l = l.WithFormatter(pterm.LogFormatterJSON)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return &Logger{l: l}, nil
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{l: pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)}
}

// ParseLevel maps a level name to a pterm level.
func ParseLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func (l *Logger) Debug(msg string, kv ...any) { l.l.Debug(msg, l.args(kv)) }
func (l *Logger) Info(msg string, kv ...any)  { l.l.Info(msg, l.args(kv)) }
func (l *Logger) Warn(msg string, kv ...any)  { l.l.Warn(msg, l.args(kv)) }
func (l *Logger) Error(msg string, kv ...any) { l.l.Error(msg, l.args(kv)) }

// args masks string and error values before handing them to pterm.
func (l *Logger) args(kv []any) []pterm.LoggerArgument {
	masked := make([]any, len(kv))
	for i, v := range kv {
		switch t := v.(type) {
		case string:
			masked[i] = Mask(t)
		case error:
			masked[i] = Mask(t.Error())
		default:
			masked[i] = v
		}
	}
	return l.l.Args(masked...)
}
