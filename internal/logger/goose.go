// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import "strings"

// GooseLogger routes goose migration output into a *Logger. It satisfies
// goose.Logger without importing goose.
type GooseLogger struct {
	l *Logger
}

// NewGooseLogger wraps l.
func NewGooseLogger(l *Logger) *GooseLogger {
	return &GooseLogger{l: l}
}

// Printf logs a migration progress line at debug level.
func (g *GooseLogger) Printf(format string, v ...any) {
	g.l.Debug().Str("component", "goose").Msgf(strings.TrimSpace(format), v...)
}

// Fatalf logs at error level. It never exits the process: migration
// failures are returned to the caller as errors.
func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.l.Error().Str("component", "goose").Msgf(strings.TrimSpace(format), v...)
}
