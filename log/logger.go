// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12

	levelMaxVerbosity = LevelTrace
)

// LevelString returns a 5-character string containing the name of a level.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO "
	case slog.LevelWarn:
		return "WARN "
	case slog.LevelError:
		return "ERROR"
	case LevelCrit:
		return "CRIT "
	default:
		return "UNKWN"
	}
}

// FromLegacyLevel maps the 0..5 verbosity flag (crit..trace) onto slog levels.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelCrit
	case 1:
		return slog.LevelError
	case 2:
		return slog.LevelWarn
	case 3:
		return slog.LevelInfo
	case 4:
		return slog.LevelDebug
	case 5:
		return LevelTrace
	}
	if lvl > 5 {
		return LevelTrace
	}
	return LevelCrit
}

// Logger writes key/value pairs to a Handler.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes.
	With(ctx ...any) Logger
	// New is an alias of With.
	New(ctx ...any) Logger

	Log(level slog.Level, msg string, ctx ...any)
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// Crit logs at critical level and terminates the process.
	Crit(msg string, ctx ...any)

	Enabled(ctx context.Context, level slog.Level) bool
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger with the specified handler set.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) Handler() slog.Handler {
	return l.inner.Handler()
}

func (l *logger) write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, "LOG_ERROR", "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Log(level slog.Level, msg string, ctx ...any) { l.write(level, msg, ctx...) }
func (l *logger) Trace(msg string, ctx ...any)                 { l.write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any)                 { l.write(slog.LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)                  { l.write(slog.LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)                  { l.write(slog.LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any)                 { l.write(slog.LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) New(ctx ...any) Logger {
	return l.With(ctx...)
}

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}
