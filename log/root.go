// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l)
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger bound to ctx that resolves the root logger on
// every call, so package level loggers follow later SetDefault calls.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

type contextLogger struct {
	ctx []any
}

func (c *contextLogger) resolve() Logger {
	return Root().With(c.ctx...)
}

func (c *contextLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(c.ctx)+len(ctx))
	merged = append(merged, c.ctx...)
	return &contextLogger{ctx: append(merged, ctx...)}
}

func (c *contextLogger) New(ctx ...any) Logger { return c.With(ctx...) }

func (c *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	c.resolve().Log(level, msg, ctx...)
}
func (c *contextLogger) Trace(msg string, ctx ...any) { c.resolve().Trace(msg, ctx...) }
func (c *contextLogger) Debug(msg string, ctx ...any) { c.resolve().Debug(msg, ctx...) }
func (c *contextLogger) Info(msg string, ctx ...any)  { c.resolve().Info(msg, ctx...) }
func (c *contextLogger) Warn(msg string, ctx ...any)  { c.resolve().Warn(msg, ctx...) }
func (c *contextLogger) Error(msg string, ctx ...any) { c.resolve().Error(msg, ctx...) }
func (c *contextLogger) Crit(msg string, ctx ...any)  { c.resolve().Crit(msg, ctx...) }

func (c *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

func (c *contextLogger) Handler() slog.Handler {
	return c.resolve().Handler()
}

// Convenience functions on the root logger.

func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { Root().Crit(msg, ctx...) }
